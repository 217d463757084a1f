package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/yashd04xyz/LC-web/internal/marketing"
)

type MarketingService interface {
	Subscribe(ctx context.Context, email string) error
	Contact(ctx context.Context, name, email, subject, message string) error
}

type MarketingHandler struct {
	service MarketingService
	log     *zap.Logger
}

func NewMarketingHandler(service MarketingService, log *zap.Logger) *MarketingHandler {
	return &MarketingHandler{service: service, log: log}
}

type newsletterRequest struct {
	Email string `json:"email"`
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *MarketingHandler) Newsletter(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.service.Subscribe(r.Context(), req.Email); err != nil {
		if errors.Is(err, marketing.ErrInvalidEmail) {
			respondError(w, h.log, http.StatusBadRequest, "A valid email is required")
			return
		}
		h.log.Error("newsletter subscribe failed", zap.Error(err))
		respondError(w, h.log, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, h.log, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Subscribed",
	})
}

func (h *MarketingHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := h.service.Contact(r.Context(), req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		if errors.Is(err, marketing.ErrInvalidEmail) || errors.Is(err, marketing.ErrInvalidMessage) {
			respondError(w, h.log, http.StatusBadRequest, "Name, a valid email, subject and a message of at least 5 characters are required")
			return
		}
		h.log.Error("contact submission failed", zap.Error(err))
		respondError(w, h.log, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, h.log, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Message received",
	})
}
