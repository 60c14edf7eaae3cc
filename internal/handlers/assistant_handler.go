package handlers

import (
	"io"
	"log/slog"
	"strings"

	"github.com/filipinasabroad/abroad-backend/internal/dto"
	"github.com/filipinasabroad/abroad-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AssistantHandler struct {
	assistant *services.AssistantService
	profiles  *services.ProfileService
	client    *services.GroqClient
}

func NewAssistantHandler(assistant *services.AssistantService, profiles *services.ProfileService, client *services.GroqClient) *AssistantHandler {
	return &AssistantHandler{assistant: assistant, profiles: profiles, client: client}
}

// Chat proxies a conversation turn to the completion provider, optionally
// augmented with reference-data context.
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	if !h.client.IsConfigured() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Error: true, Message: "The assistant is not configured"})
	}

	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	reply, err := h.assistant.Chat(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(dto.ChatResponse{Reply: reply})
}

// RewriteCV accepts extracted resume text, either as a multipart "file" part
// or as a "cv_text" form/JSON field, and returns the rewritten markdown.
func (h *AssistantHandler) RewriteCV(c *fiber.Ctx) error {
	if !h.client.IsConfigured() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Error: true, Message: "The assistant is not configured"})
	}

	profile, err := currentProfile(h.profiles, c)
	if err != nil {
		return fail(c, err)
	}

	cvText, jobDescription, title := h.readCVInput(c)

	markdown, err := h.assistant.RewriteCV(cvText, jobDescription)
	if err != nil {
		return fail(c, err)
	}

	if err := h.profiles.IncrementCVUses(profile.ID); err != nil {
		slog.Error("failed to record CV use", "profile_id", profile.ID, "error", err)
	}

	return c.JSON(dto.CVResponse{Markdown: markdown, Title: title})
}

// readCVInput pulls the resume text from a multipart "file" part when one was
// uploaded, otherwise from the cv_text field (form or JSON body).
func (h *AssistantHandler) readCVInput(c *fiber.Ctx) (text, jobDescription, title string) {
	if fh, err := c.FormFile("file"); err == nil {
		if f, err := fh.Open(); err == nil {
			defer f.Close()
			if b, err := io.ReadAll(f); err == nil {
				return string(b), c.FormValue("job_description"), strings.TrimSuffix(fh.Filename, ".txt")
			}
		}
	}

	var body struct {
		CVText         string `json:"cv_text" form:"cv_text"`
		JobDescription string `json:"job_description" form:"job_description"`
	}
	if err := c.BodyParser(&body); err != nil {
		return "", "", "cv"
	}
	return body.CVText, body.JobDescription, "cv"
}
