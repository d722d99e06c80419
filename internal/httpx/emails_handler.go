package httpx

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/GrandsonfrmO/galaxyshop-backend/internal/maillog"
)

type Sender interface {
	Send(ctx context.Context, t maillog.Type, to string, data map[string]any) error
}

type EmailLogStore interface {
	List(ctx context.Context, limit int) ([]maillog.Entry, error)
}

type EmailsHandler struct {
	Dispatcher Sender
	Logs       EmailLogStore
	validate   *validator.Validate
}

func NewEmailsHandler(d Sender, logs EmailLogStore) *EmailsHandler {
	return &EmailsHandler{Dispatcher: d, Logs: logs, validate: NewValidator()}
}

type SendEmailRequest struct {
	EmailType string         `json:"emailType" validate:"required"`
	To        string         `json:"to" validate:"required,email"`
	Data      map[string]any `json:"data"`
}

// send dispatches one transactional email synchronously. Either way the
// attempt is recorded in email_logs; the response reports the outcome
// without failing the request.
func (h *EmailsHandler) send(w http.ResponseWriter, r *http.Request) {
	var req SendEmailRequest
	if !decodeValid(w, r, h.validate, &req) {
		return
	}
	t := maillog.Type(req.EmailType)
	if !t.Valid() {
		writeError(w, http.StatusBadRequest, "unknown email type: "+req.EmailType)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 12*time.Second)
	defer cancel()

	if err := h.Dispatcher.Send(ctx, t, req.To, req.Data); err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": maillog.StatusFailed})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": maillog.StatusSent})
}

func (h *EmailsHandler) logs(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, 50)

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Logs.List(ctx, limit)
	if err != nil {
		log.Printf("httpx: list email logs: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}
