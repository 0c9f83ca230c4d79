package router

import (
	"Feedback_Backend/internal/handler"
	"Feedback_Backend/internal/web"
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func NewApp(ipv6Only bool) *fiber.App {
	config := fiber.Config{
		AppName:      "Feedback Backend",
		ErrorHandler: handler.ErrorHandler,
		JSONEncoder:  encodeJSON,
	}
	if ipv6Only {
		config.Network = fiber.NetworkTCP6
	}

	app := fiber.New(config)
	app.Use(recover.New())
	return app
}

// encodeJSON is json.Marshal without HTML escaping, so stored records are
// served exactly as they were submitted.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func Register(app *fiber.App, feedbackHandler *handler.FeedbackHandler) {
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   web.StaticFS(),
		MaxAge: 3600,
	}))

	app.Get("/", feedbackHandler.Index)
	app.Post("/submit_feedback", feedbackHandler.SubmitFeedback)
	app.Get("/get_feedback", feedbackHandler.GetFeedback)
}
