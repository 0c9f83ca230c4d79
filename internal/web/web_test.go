package web

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, IndexTemplate, PageData{Title: "Customer Feedback"}))

	html := buf.String()
	assert.Contains(t, html, "<title>Customer Feedback</title>")
	assert.Contains(t, html, `id="feedbackForm"`)
	assert.NotContains(t, html, "socket.io.min.js")
}

func TestTemplates_LiveFeed(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, IndexTemplate, PageData{
		Title:       "Customer Feedback",
		LiveFeedURL: "http://localhost:5001",
	}))
	assert.Contains(t, buf.String(), `data-live-feed="http://localhost:5001"`)
	assert.Contains(t, buf.String(), "socket.io.min.js")
}

func TestStaticFS(t *testing.T) {
	for _, name := range []string{"/script.js", "/style.css"} {
		f, err := StaticFS().Open(name)
		require.NoError(t, err, name)

		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
		f.Close()
	}

	_, err := StaticFS().Open("/missing.js")
	assert.Error(t, err)
}
