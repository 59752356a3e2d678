package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio-backend/internal/service"
)

// ContactHandler handles the contact form endpoint.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactRequest represents a contact form submission.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// ContactResponse is the contact endpoint's response envelope.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SendMessage godoc
// @Summary Relay a contact form submission by email
// @Tags contact
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Contact message"
// @Success 200 {object} ContactResponse
// @Failure 400 {object} ContactResponse
// @Failure 500 {object} ContactResponse
// @Router /contact [post]
func (h *ContactHandler) SendMessage(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ContactResponse{
			Success: false,
			Message: "All fields are required",
		})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ContactResponse{
			Success: false,
			Message: "All fields are required",
		})
	}

	if err := h.contactService.SendContactMessage(c.Request().Context(), req.Name, req.Email, req.Subject, req.Message); err != nil {
		return c.JSON(http.StatusInternalServerError, ContactResponse{
			Success: false,
			Message: "Failed to send message",
		})
	}

	return c.JSON(http.StatusOK, ContactResponse{
		Success: true,
		Message: "Message sent successfully",
	})
}
