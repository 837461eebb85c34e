package email

import "context"

// SendWelcomeEmail greets a freshly created back-office user.
func (c *Client) SendWelcomeEmail(ctx context.Context, to, fullName, username, accessLevel, loginURL string) error {
	data := map[string]string{
		"FullName":    fullName,
		"Username":    username,
		"AccessLevel": accessLevel,
		"LoginURL":    loginURL,
	}

	return c.SendEmail(ctx, to, "Your back-office account is ready", TemplateWelcome, data)
}

// SendPasswordResetEmail delivers the reset link requested through
// forgot-password.
func (c *Client) SendPasswordResetEmail(ctx context.Context, to, fullName, username, resetURL, expiresIn string) error {
	data := map[string]string{
		"FullName":  fullName,
		"Username":  username,
		"ResetURL":  resetURL,
		"ExpiresIn": expiresIn,
	}

	return c.SendEmail(ctx, to, "Reset your back-office password", TemplatePasswordReset, data)
}
