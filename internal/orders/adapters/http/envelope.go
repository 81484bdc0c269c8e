package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mveljko/paybridge/internal/orders/app"
)

// Actions accepted through the checkout envelope.
const (
	ActionCreateOrder   = "createOrder"
	ActionVerifyPayment = "verifyPayment"
)

// Request is the canonical action+payload shape every transport normalizes
// into. The HTTP deployment reads it straight from the request body; other
// deployments (queue consumer, CLI) would produce the same struct.
type Request struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// NormalizeRequest unwraps the ad-hoc envelope shapes clients send: the
// canonical {action, payload} form, and a flat form where the action sits
// beside the payload fields.
func NormalizeRequest(body []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, errors.New("invalid JSON payload")
	}

	if strings.TrimSpace(req.Action) == "" {
		return nil, errors.New("action is required")
	}

	if len(req.Payload) == 0 {
		// Flat form: the remaining top-level fields are the payload.
		req.Payload = body
	}

	switch req.Action {
	case ActionCreateOrder, ActionVerifyPayment:
		return &req, nil
	default:
		return nil, fmt.Errorf("unknown action %q", req.Action)
	}
}

func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	req, err := NormalizeRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch req.Action {
	case ActionCreateOrder:
		h.checkoutCreateOrder(w, r, req.Payload)
	case ActionVerifyPayment:
		h.checkoutVerifyPayment(w, r, req.Payload)
	}
}

func (h *Handler) checkoutCreateOrder(w http.ResponseWriter, r *http.Request, payload json.RawMessage) {
	var input app.CreateOrderInput
	if err := json.Unmarshal(payload, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid createOrder payload")
		return
	}

	result, err := h.service.CreateOrder(r.Context(), input)
	if err != nil {
		writeCommandError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, createOrderResponse(result))
}

func (h *Handler) checkoutVerifyPayment(w http.ResponseWriter, r *http.Request, payload json.RawMessage) {
	var input app.VerifyPaymentInput
	if err := json.Unmarshal(payload, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid verifyPayment payload")
		return
	}

	order, err := h.service.VerifyPayment(r.Context(), input)
	if err != nil {
		writeCommandError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, verifyPaymentResponse(order))
}
