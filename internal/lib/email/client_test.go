package email

import (
	"context"
	"testing"

	"github.com/deppfellow/realty/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_PreviewData(t *testing.T) {
	for name, data := range PreviewData {
		html, err := Render(name, data)
		require.NoError(t, err, name)
		assert.Contains(t, html, data["FullName"])
		assert.Contains(t, html, data["Username"])
	}
}

func TestRender_EscapesInput(t *testing.T) {
	html, err := Render(TemplateWelcome, map[string]string{"FullName": "<script>x</script>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>x</script>")
}

func TestSendEmail_WithoutAPIKeyIsNoop(t *testing.T) {
	logger := zerolog.Nop()
	c := NewClient(config.Default(), &logger)

	err := c.SendWelcomeEmail(context.Background(), "maria@example.com", "Maria", "maria", "editor", "")
	assert.NoError(t, err)
}

func TestRender_PasswordResetLink(t *testing.T) {
	data := PreviewData[TemplatePasswordReset]

	html, err := Render(TemplatePasswordReset, data)
	require.NoError(t, err)
	assert.Contains(t, html, `href="`+data["ResetURL"]+`"`)
	assert.Contains(t, html, data["ExpiresIn"])
}
