package email

// PreviewData holds sample values for rendering each template locally.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"FullName":    "Maria Souza",
		"Username":    "maria",
		"AccessLevel": "editor",
		"LoginURL":    "http://localhost:5173/admin/login",
	},
	TemplatePasswordReset: {
		"FullName":  "Maria Souza",
		"Username":  "maria",
		"ResetURL":  "http://localhost:5173/reset-password?token=sample",
		"ExpiresIn": "1 hour",
	},
}
