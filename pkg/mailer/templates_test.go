package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	job := EmailJob{
		To:       "alice@example.com",
		Template: EventRegistered,
		Data: map[string]any{
			"Name":          "alice",
			"EventDate":     "2026-10-01T18:00:00Z",
			"EventLocation": "weekly satsang",
		},
	}

	html, err := RenderHTML(job)
	require.NoError(t, err)
	assert.Contains(t, html, "Hari Om alice")
	assert.Contains(t, html, "Registration confirmed")
	assert.Contains(t, html, "weekly satsang")
	assert.Contains(t, html, "2026-10-01T18:00:00Z")
}

func TestRenderHTMLUnknownTemplate(t *testing.T) {
	html, err := RenderHTML(EmailJob{Template: "something_else", Data: map[string]any{"Body": "hello"}})
	require.NoError(t, err)
	assert.Contains(t, html, "hello")
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "You are registered", Subject(EventRegistered))
	assert.Equal(t, "Registration cancelled", Subject(EventUnregistered))
	assert.Equal(t, "Your endorsement was recorded", Subject(EventEndorsed))
	assert.Equal(t, "Your account was verified", Subject(UserVerified))
	assert.Equal(t, "Janata notification", Subject("whatever"))
}
