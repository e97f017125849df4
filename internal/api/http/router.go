package http

import (
	"net/http"

	"threadart-backend/internal/domain"

	"github.com/gorilla/mux"
)

// Handlers collects the handler set the router wires up.
type Handlers struct {
	Auth         *AuthHandler
	Orders       *OrderHandler
	Product      *ProductHandler
	Design       *DesignHandler
	CustomDesign *CustomDesignHandler
}

// NewRouter builds the full API route table. Everything under /api except
// auth and the public catalog requires a bearer token.
func NewRouter(h Handlers, auth *AuthMiddleware) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/signup", h.Auth.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/products", h.Product.ListProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{id:[0-9]+}", h.Product.GetProduct).Methods(http.MethodGet)
	api.HandleFunc("/custom-designs/base-product", h.CustomDesign.GetBaseProduct).Methods(http.MethodGet)

	// Authenticated routes
	authed := api.NewRoute().Subrouter()
	authed.Use(auth.Authenticate)

	authed.HandleFunc("/orders", h.Orders.CreateOrder).Methods(http.MethodPost)
	authed.HandleFunc("/orders", h.Orders.ListOrders).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id:[0-9]+}", h.Orders.GetOrder).Methods(http.MethodGet)

	authed.HandleFunc("/custom-designs", h.CustomDesign.SaveDesign).Methods(http.MethodPost)
	authed.HandleFunc("/custom-designs", h.CustomDesign.ListDesigns).Methods(http.MethodGet)
	authed.HandleFunc("/custom-designs/{id:[0-9]+}", h.CustomDesign.GetDesign).Methods(http.MethodGet)
	authed.HandleFunc("/custom-designs/{id:[0-9]+}", h.CustomDesign.UpdateDesign).Methods(http.MethodPut)
	authed.HandleFunc("/custom-designs/{id:[0-9]+}", h.CustomDesign.DeleteDesign).Methods(http.MethodDelete)

	// Designer routes
	designer := authed.NewRoute().Subrouter()
	designer.Use(RequireRole(domain.RoleDesigner))
	designer.HandleFunc("/designs", h.Design.SubmitDesign).Methods(http.MethodPost)
	designer.HandleFunc("/designer/designs", h.Design.ListMyDesigns).Methods(http.MethodGet)
	designer.HandleFunc("/designer/stats", h.Design.GetStats).Methods(http.MethodGet)
	designer.HandleFunc("/designer/transactions", h.Design.ListTransactions).Methods(http.MethodGet)
	designer.HandleFunc("/designer/withdraw", h.Design.RequestWithdrawal).Methods(http.MethodPost)

	// Admin routes
	admin := authed.NewRoute().Subrouter()
	admin.Use(RequireRole(domain.RoleAdmin))
	admin.HandleFunc("/orders/{id:[0-9]+}/status", h.Orders.UpdateOrderStatus).Methods(http.MethodPut)
	admin.HandleFunc("/products", h.Product.CreateProduct).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id:[0-9]+}", h.Product.UpdateProduct).Methods(http.MethodPut)
	admin.HandleFunc("/admin/designs", h.Design.ListDesignsForReview).Methods(http.MethodGet)
	admin.HandleFunc("/admin/designs/{id:[0-9]+}/approve", h.Design.ApproveDesign).Methods(http.MethodPost)
	admin.HandleFunc("/admin/designs/{id:[0-9]+}/reject", h.Design.RejectDesign).Methods(http.MethodPost)
	admin.HandleFunc("/admin/withdrawals", h.Design.ListPendingWithdrawals).Methods(http.MethodGet)

	return r
}
