package router

import (
	"Feedback_Backend/internal/handler"
	repoFeedback "Feedback_Backend/internal/repository/feedback"
	"Feedback_Backend/internal/service/feedback"
	"Feedback_Backend/internal/web"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, storePath string) *fiber.App {
	t.Helper()

	templates, err := web.Templates()
	require.NoError(t, err)

	svc := feedback.NewFeedbackService(repoFeedback.NewFileRepository(storePath), nil)
	app := NewApp(false)
	Register(app, handler.NewFeedbackHandler(svc, templates, web.PageData{Title: "Feedback"}))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestIndex(t *testing.T) {
	app := newTestApp(t, filepath.Join(t.TempDir(), "feedback.json"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<title>Feedback</title>")
}

func TestIndex_RenderFailure(t *testing.T) {
	templates := template.Must(template.New("other.html").Parse("nothing here"))
	svc := feedback.NewFeedbackService(repoFeedback.NewFileRepository(filepath.Join(t.TempDir(), "feedback.json")), nil)
	app := NewApp(false)
	Register(app, handler.NewFeedbackHandler(svc, templates, web.PageData{}))

	code, body := do(t, app, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"status":"error","message":"Page is unavailable"}`, body)
}

func TestStaticAssets(t *testing.T) {
	app := newTestApp(t, filepath.Join(t.TempDir(), "feedback.json"))

	code, body := do(t, app, http.MethodGet, "/static/script.js", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "/submit_feedback")

	code, _ = do(t, app, http.MethodGet, "/static/nope.js", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetFeedback_MissingFile(t *testing.T) {
	app := newTestApp(t, filepath.Join(t.TempDir(), "feedback.json"))

	code, body := do(t, app, http.MethodGet, "/get_feedback", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `[]`, body)
}

func TestSubmitThenGet(t *testing.T) {
	app := newTestApp(t, filepath.Join(t.TempDir(), "feedback.json"))

	code, body := do(t, app, http.MethodPost, "/submit_feedback", `{"rating":5,"comment":"great"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `{"status":"success"}`, body)

	code, body = do(t, app, http.MethodGet, "/get_feedback", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `[{"rating":5,"comment":"great"}]`, body)
}

func TestSubmitThenGet_KeepsHTMLCharacters(t *testing.T) {
	app := newTestApp(t, filepath.Join(t.TempDir(), "feedback.json"))

	code, _ := do(t, app, http.MethodPost, "/submit_feedback", `{"c":"<b> & é"}`)
	require.Equal(t, http.StatusOK, code)

	code, body := do(t, app, http.MethodGet, "/get_feedback", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `[{"c":"<b> & é"}]`, body)
}

func TestSubmit_KeepsSubmissionOrder(t *testing.T) {
	app := newTestApp(t, filepath.Join(t.TempDir(), "feedback.json"))

	for _, body := range []string{`{"a":1}`, `{"b":2}`} {
		code, _ := do(t, app, http.MethodPost, "/submit_feedback", body)
		require.Equal(t, http.StatusOK, code)
	}

	code, body := do(t, app, http.MethodGet, "/get_feedback", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `[{"a":1},{"b":2}]`, body)
}

func TestSubmit_NSequential(t *testing.T) {
	app := newTestApp(t, filepath.Join(t.TempDir(), "feedback.json"))

	const n = 10
	expected := make([]string, 0, n)
	for i := 0; i < n; i++ {
		record := fmt.Sprintf(`{"n":%d,"text":"entry %d"}`, i, i)
		expected = append(expected, record)
		code, _ := do(t, app, http.MethodPost, "/submit_feedback", record)
		require.Equal(t, http.StatusOK, code)
	}

	_, first := do(t, app, http.MethodGet, "/get_feedback", "")
	_, second := do(t, app, http.MethodGet, "/get_feedback", "")
	assert.Equal(t, "["+strings.Join(expected, ",")+"]", first)
	assert.Equal(t, first, second)
}

func TestSubmit_BadRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.json")
	app := newTestApp(t, path)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"malformed", `{"rating":`, "Invalid JSON body"},
		{"empty", ``, "Invalid JSON body"},
		{"invalid utf-8", "{\"c\":\"\xff\"}", "Invalid JSON body"},
		{"array", `[{"a":1}]`, "Feedback must be a JSON object"},
		{"string", `"hello"`, "Feedback must be a JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/submit_feedback", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.JSONEq(t, fmt.Sprintf(`{"status":"error","message":%q}`, tt.message), string(body))
		})
	}

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "rejected submissions must not create the store")
}

func TestCorruptStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.json")
	require.NoError(t, os.WriteFile(path, []byte(`"not a json array"`), 0644))
	app := newTestApp(t, path)

	code, body := do(t, app, http.MethodGet, "/get_feedback", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"status":"error","message":"Failed to load feedback"}`, body)

	code, _ = do(t, app, http.MethodPost, "/submit_feedback", `{"a":1}`)
	assert.Equal(t, http.StatusInternalServerError, code)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `"not a json array"`, string(content), "a corrupt store is never overwritten")
}

func TestSubmit_UnwritableStore(t *testing.T) {
	app := newTestApp(t, filepath.Join(t.TempDir(), "missing_folder", "feedback.json"))

	code, body := do(t, app, http.MethodPost, "/submit_feedback", `{"a":1}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"status":"error","message":"Failed to store feedback"}`, body)
}

func TestSubmit_Concurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.json")
	app := newTestApp(t, path)

	var wg sync.WaitGroup
	for _, record := range []string{`{"a":1}`, `{"b":2}`} {
		wg.Add(1)
		go func(record string) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/submit_feedback", strings.NewReader(record))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, -1)
			if assert.NoError(t, err) {
				assert.Equal(t, http.StatusOK, resp.StatusCode)
			}
		}(record)
	}
	wg.Wait()

	feedback, err := repoFeedback.NewFileRepository(path).Load(t.Context())
	require.NoError(t, err)
	assert.Len(t, feedback, 2)
}
