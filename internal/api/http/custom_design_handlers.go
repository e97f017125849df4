package http

import (
	"net/http"
	"strconv"

	"threadart-backend/internal/domain"
	"threadart-backend/internal/service"

	"github.com/gorilla/mux"
)

type CustomDesignHandler struct {
	svc service.CustomDesignService
}

func NewCustomDesignHandler(svc service.CustomDesignService) *CustomDesignHandler {
	return &CustomDesignHandler{svc: svc}
}

// SaveDesign handles POST /api/custom-designs
func (h *CustomDesignHandler) SaveDesign(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var input service.SaveCustomDesignInput
	if err := decodeBody(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	design, err := h.svc.SaveDesign(r.Context(), claims.UserID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Design saved",
		"design":  design,
	})
}

// ListDesigns handles GET /api/custom-designs
func (h *CustomDesignHandler) ListDesigns(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	designs, err := h.svc.ListDesigns(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if designs == nil {
		designs = []domain.CustomDesign{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"designs": designs})
}

// GetDesign handles GET /api/custom-designs/{id}
func (h *CustomDesignHandler) GetDesign(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid design id"})
		return
	}

	design, err := h.svc.GetDesign(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"design": design})
}

// UpdateDesign handles PUT /api/custom-designs/{id}
func (h *CustomDesignHandler) UpdateDesign(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid design id"})
		return
	}

	var input service.UpdateCustomDesignInput
	if err := decodeBody(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	design, err := h.svc.UpdateDesign(r.Context(), claims.UserID, id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Design updated",
		"design":  design,
	})
}

// DeleteDesign handles DELETE /api/custom-designs/{id}
func (h *CustomDesignHandler) DeleteDesign(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid design id"})
		return
	}

	if err := h.svc.DeleteDesign(r.Context(), claims.UserID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Design deleted"})
}

// GetBaseProduct handles GET /api/custom-designs/base-product (public)
func (h *CustomDesignHandler) GetBaseProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.svc.GetBaseProduct(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"product": product})
}
