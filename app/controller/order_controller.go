package controller

import (
	"encoding/json"
	"net/http"
	"strings"

	"carnes-boutique/apperrors"
	"carnes-boutique/models"
)

// OrderController handles HTTP requests for delivered-order reconciliation
type OrderController struct {
	reconciler OrderReconciler
}

// NewOrderController creates a new OrderController
func NewOrderController(reconciler OrderReconciler) *OrderController {
	return &OrderController{reconciler: reconciler}
}

func decodeRecalculateRequest(r *http.Request) (models.RecalculateRequest, error) {
	var req models.RecalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, apperrors.New(http.StatusBadRequest, "invalid JSON body", err)
	}
	req.Region = strings.TrimSpace(req.Region)
	if len(req.Reports) == 0 && strings.TrimSpace(req.Text) == "" {
		return req, apperrors.BadRequest("reports or text is required")
	}
	return req, nil
}

// Recalculate handles POST /admin/orders/recalculate
func (c *OrderController) Recalculate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRecalculateRequest(r)
	if err != nil {
		writeError(w, r, "Recalculate", err)
		return
	}

	resp, err := c.reconciler.Calculate(r.Context(), req)
	if err != nil {
		writeError(w, r, "Recalculate", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Send handles POST /admin/orders/recalculate/send
func (c *OrderController) Send(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRecalculateRequest(r)
	if err != nil {
		writeError(w, r, "Send", err)
		return
	}

	resp, err := c.reconciler.SendRecalculation(r.Context(), req)
	if err != nil {
		writeError(w, r, "Send", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
