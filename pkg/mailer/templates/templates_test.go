package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/catalog-backoffice/config"
)

func TestRenderProfileUpdated(t *testing.T) {
	cfg := &config.Config{AppName: "Catalog", CompanyName: "Acme", AdminURL: "https://admin.test"}
	data := NewProfileUpdatedData(cfg, "Budi", "budi@example.com",
		WithTime(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)),
		WithChanges([]string{"phone", "password"}, map[string]string{"phone": "0811", "password": "secret"}),
	)

	subject, text, html, err := Render(ProfileUpdated, data)
	require.NoError(t, err)
	assert.Equal(t, "Catalog: your profile was updated", subject)
	assert.Contains(t, text, "Hi Budi")
	assert.Contains(t, text, "- phone: 0811")
	assert.Contains(t, text, "- password: updated")
	assert.NotContains(t, text, "secret")
	assert.Contains(t, text, "01 March 2024, 10:30")
	assert.Contains(t, html, "https://admin.test")
}

func TestRenderWithoutChanges(t *testing.T) {
	data := NewProfileUpdatedData(&config.Config{}, "", "x@example.com")
	subject, text, _, err := Render(ProfileUpdated, data)
	require.NoError(t, err)
	assert.Equal(t, "Back office: your profile was updated", subject)
	assert.Contains(t, text, "Hi there")
	assert.NotContains(t, text, "Changed fields")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", map[string]any{})
	assert.ErrorIs(t, err, ErrUnknownTemplate)
	assert.False(t, Known("nope"))
	assert.True(t, Known(ProfileUpdated))
}
