package handler

import (
	"Feedback_Backend/internal/model"
	"Feedback_Backend/internal/service/feedback"
	"Feedback_Backend/internal/web"
	"bytes"
	"errors"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type FeedbackHandler struct {
	feedbackService *feedback.FeedbackService
	templates       *template.Template
	page            web.PageData
}

func NewFeedbackHandler(feedbackService *feedback.FeedbackService, templates *template.Template, page web.PageData) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		templates:       templates,
		page:            page,
	}
}

func (h *FeedbackHandler) Index(c *fiber.Ctx) error {
	if h.templates == nil {
		log.Error("Index: page templates are not loaded")
		return fiber.NewError(fiber.StatusInternalServerError, "Page is unavailable")
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, web.IndexTemplate, h.page); err != nil {
		log.Error("Index: error while rendering page:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Page is unavailable")
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func (h *FeedbackHandler) SubmitFeedback(c *fiber.Ctx) error {
	newFeedback, err := model.ParseFeedback(c.Body())
	if err != nil {
		if errors.Is(err, model.ErrNotObject) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Feedback must be a JSON object"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid JSON body"})
	}

	if err := h.feedbackService.AddFeedback(c.UserContext(), newFeedback); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to store feedback")
	}

	return c.JSON(fiber.Map{"status": "success"})
}

func (h *FeedbackHandler) GetFeedback(c *fiber.Ctx) error {
	feedbackList, err := h.feedbackService.GetFeedback(c.UserContext())
	if err != nil {
		log.Error("GetFeedback: error while loading feedback:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load feedback")
	}
	return c.JSON(feedbackList)
}
