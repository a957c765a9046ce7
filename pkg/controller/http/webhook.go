package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	githubcontroller "github.com/rkdwoals159/pr-ai-reviewer/pkg/controller/github"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/interfaces"
)

// GitHub caps webhook payloads at 25 MB
const maxPayloadSize = 25 << 20

// WebhookHandler handles GitHub webhooks
type WebhookHandler struct {
	secret    string
	processor *githubcontroller.EventProcessor
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(secret string, webhookUC interfaces.WebhookUseCase) *WebhookHandler {
	return &WebhookHandler{
		secret:    secret,
		processor: githubcontroller.NewEventProcessor(webhookUC),
	}
}

// Handle processes webhook requests
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	signature := r.Header.Get("X-Hub-Signature-256")
	deliveryID := r.Header.Get("X-GitHub-Delivery")
	eventType := r.Header.Get("X-GitHub-Event")
	if signature == "" || deliveryID == "" || eventType == "" {
		logger.Warn("Missing GitHub webhook headers",
			"has_signature", signature != "",
			"delivery_id", deliveryID,
			"event_type", eventType,
		)
		writeError(w, goerr.New("missing GitHub webhook headers"), http.StatusBadRequest)
		return
	}

	// Read payload
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadSize))
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeError(w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Verify signature
	if !h.verifySignature(body, signature) {
		logger.Warn("Invalid webhook signature", "delivery_id", deliveryID)
		writeError(w, goerr.New("invalid signature"), http.StatusUnauthorized)
		return
	}

	if err := h.processor.ProcessEvent(ctx, eventType, deliveryID, body); err != nil {
		if errors.Is(err, githubcontroller.ErrInvalidPayload) {
			logger.Warn("Failed to parse webhook payload", "error", err)
			writeError(w, err, http.StatusBadRequest)
			return
		}

		logger.Error("Failed to process webhook event", "error", err)
		writeError(w, goerr.New("webhook handling error"), http.StatusInternalServerError)
		return
	}

	// Success response
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "success",
	}); err != nil {
		logger.Error("Failed to encode success response", "error", err)
	}
}

// verifySignature verifies the webhook signature
func (h *WebhookHandler) verifySignature(payload []byte, signature string) bool {
	if signature == "" {
		return false
	}

	// Remove "sha256=" prefix if present
	signature = strings.TrimPrefix(signature, "sha256=")

	// Calculate HMAC-SHA256
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(payload)
	expectedMAC := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expectedMAC))
}
