package http

import (
	"net/http"
	"strconv"

	"threadart-backend/internal/domain"
	"threadart-backend/internal/service"

	"github.com/gorilla/mux"
)

type DesignHandler struct {
	designSvc service.DesignService
	walletSvc service.WalletService
}

func NewDesignHandler(designSvc service.DesignService, walletSvc service.WalletService) *DesignHandler {
	return &DesignHandler{designSvc: designSvc, walletSvc: walletSvc}
}

// SubmitDesign handles POST /api/designs (designer only)
func (h *DesignHandler) SubmitDesign(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var input struct {
		Name        string `json:"name"`
		Image       string `json:"image"`
		Description string `json:"description"`
		PriceCents  int64  `json:"price_cents"`
	}
	if err := decodeBody(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}
	if input.Name == "" || input.Image == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "name and image are required"})
		return
	}

	design, err := h.designSvc.SubmitDesign(r.Context(), claims.UserID, input.Name, input.Image, input.Description, input.PriceCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Design submitted for review",
		"design":  design,
	})
}

// ListMyDesigns handles GET /api/designer/designs
func (h *DesignHandler) ListMyDesigns(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	designs, err := h.designSvc.ListDesignerDesigns(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if designs == nil {
		designs = []domain.Design{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"designs": designs})
}

// GetStats handles GET /api/designer/stats
func (h *DesignHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	stats, err := h.designSvc.GetDesignerStats(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"stats": stats})
}

// ListTransactions handles GET /api/designer/transactions
func (h *DesignHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	transactions, err := h.walletSvc.GetTransactions(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if transactions == nil {
		transactions = []domain.EarningsTransaction{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"transactions": transactions})
}

// RequestWithdrawal handles POST /api/designer/withdraw
func (h *DesignHandler) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var input struct {
		AmountCents int64 `json:"amount_cents"`
	}
	if err := decodeBody(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	tx, err := h.walletSvc.RequestWithdrawal(r.Context(), claims.UserID, input.AmountCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Withdrawal request submitted",
		"transaction": tx,
	})
}

// ListDesignsForReview handles GET /api/admin/designs?status= (admin only)
func (h *DesignHandler) ListDesignsForReview(w http.ResponseWriter, r *http.Request) {
	status := domain.DesignStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.DesignStatusPending
	}

	designs, err := h.designSvc.ListByStatus(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	if designs == nil {
		designs = []domain.Design{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"designs": designs})
}

// ApproveDesign handles POST /api/admin/designs/{id}/approve (admin only)
func (h *DesignHandler) ApproveDesign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid design id"})
		return
	}

	design, err := h.designSvc.ApproveDesign(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Design approved",
		"design":  design,
	})
}

// RejectDesign handles POST /api/admin/designs/{id}/reject (admin only)
func (h *DesignHandler) RejectDesign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid design id"})
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := decodeBody(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	design, err := h.designSvc.RejectDesign(r.Context(), id, input.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Design rejected",
		"design":  design,
	})
}

// ListPendingWithdrawals handles GET /api/admin/withdrawals (admin only)
func (h *DesignHandler) ListPendingWithdrawals(w http.ResponseWriter, r *http.Request) {
	withdrawals, err := h.walletSvc.ListPendingWithdrawals(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if withdrawals == nil {
		withdrawals = []domain.EarningsTransaction{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"withdrawals": withdrawals})
}
