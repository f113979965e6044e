package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
	"github.com/iliyamo/restaurant-table-booking/internal/notify"
	"github.com/iliyamo/restaurant-table-booking/internal/repository"
	"github.com/iliyamo/restaurant-table-booking/internal/utils"
)

// ContactHandler accepts public contact-form submissions.  The message
// is stored first; notifying the admins is fire-and-forget and never
// fails the request.
type ContactHandler struct {
	Contacts   *repository.ContactRepo
	Users      *repository.UserRepo
	Dispatcher *notify.Dispatcher
}

func NewContactHandler(contacts *repository.ContactRepo, users *repository.UserRepo, d *notify.Dispatcher) *ContactHandler {
	if contacts == nil || users == nil || d == nil {
		panic("nil dependency passed to NewContactHandler")
	}
	return &ContactHandler{Contacts: contacts, Users: users, Dispatcher: d}
}

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit handles POST /v1/contact.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and message are required"})
	}
	if !utils.ValidEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email"})
	}

	ctx := c.Request().Context()
	msg := model.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	}
	if err := h.Contacts.Create(ctx, &msg); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save message failed"})
	}

	// Notify the admin list; an empty list or a broker outage only
	// costs the notification, never the stored message.
	if admins, err := h.Users.AdminEmails(ctx); err == nil && len(admins) > 0 {
		h.Dispatcher.ContactSubmitted(msg, admins)
	}

	return c.JSON(http.StatusCreated, echo.Map{"contact": msg})
}
