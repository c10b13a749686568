package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Dan9191/money-service/internal/auth"
	"github.com/Dan9191/money-service/internal/middleware"
	"github.com/Dan9191/money-service/internal/models"
	"github.com/Dan9191/money-service/internal/repository"
	"github.com/Dan9191/money-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// NewRouter wires every route. Everything under /api except register, login
// and health requires a bearer token.
func NewRouter(h *Handler, tokens *auth.TokenService, users middleware.UserFinder) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(h.log))

	api := r.PathPrefix("/api").Subrouter()
	// Public routes
	api.HandleFunc("/register", h.Register).Methods("POST")
	api.HandleFunc("/login", h.Login).Methods("POST")
	api.HandleFunc("/health", h.Health).Methods("GET")

	// Protected routes
	p := api.NewRoute().Subrouter()
	p.Use(middleware.AuthMiddleware(tokens, users, h.log))

	p.HandleFunc("/user/profile", h.GetProfile).Methods("GET")
	p.HandleFunc("/user/profile", h.UpdateProfile).Methods("PUT")

	p.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	p.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	p.HandleFunc("/transactions/export", h.ExportTransactions).Methods("GET")
	p.HandleFunc("/transactions/{id:[0-9]+}", h.UpdateTransaction).Methods("PUT")
	p.HandleFunc("/transactions/{id:[0-9]+}", h.deleteHandler(repository.Transactions)).Methods("DELETE")

	p.HandleFunc("/budgets", h.ListBudgets).Methods("GET")
	p.HandleFunc("/budgets", h.CreateBudget).Methods("POST")
	p.HandleFunc("/budgets/{id:[0-9]+}", h.UpdateBudget).Methods("PUT")
	p.HandleFunc("/budgets/{id:[0-9]+}", h.deleteHandler(repository.Budgets)).Methods("DELETE")

	p.HandleFunc("/goals", h.ListGoals).Methods("GET")
	p.HandleFunc("/goals", h.CreateGoal).Methods("POST")
	p.HandleFunc("/goals/{id:[0-9]+}", h.UpdateGoal).Methods("PUT")
	p.HandleFunc("/goals/{id:[0-9]+}", h.deleteHandler(repository.Goals)).Methods("DELETE")

	p.HandleFunc("/bills", h.ListBills).Methods("GET")
	p.HandleFunc("/bills", h.CreateBill).Methods("POST")
	p.HandleFunc("/bills/{id:[0-9]+}", h.UpdateBill).Methods("PUT")
	p.HandleFunc("/bills/{id:[0-9]+}", h.deleteHandler(repository.Bills)).Methods("DELETE")

	p.HandleFunc("/accounts", h.ListAccounts).Methods("GET")
	p.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	p.HandleFunc("/accounts/{id:[0-9]+}", h.UpdateAccount).Methods("PUT")
	p.HandleFunc("/accounts/{id:[0-9]+}", h.deleteHandler(repository.Accounts)).Methods("DELETE")
	p.HandleFunc("/accounts/{id:[0-9]+}/reconcile", h.ReconcileAccount).Methods("POST")

	p.HandleFunc("/envelope-budgets", h.ListEnvelopes).Methods("GET")
	p.HandleFunc("/envelope-budgets", h.CreateEnvelope).Methods("POST")
	p.HandleFunc("/envelope-budgets/{id:[0-9]+}", h.UpdateEnvelope).Methods("PUT")
	p.HandleFunc("/envelope-budgets/{id:[0-9]+}", h.deleteHandler(repository.EnvelopeBudgets)).Methods("DELETE")

	p.HandleFunc("/recurring-transactions", h.ListRecurring).Methods("GET")
	p.HandleFunc("/recurring-transactions", h.CreateRecurring).Methods("POST")
	p.HandleFunc("/recurring-transactions/process", h.ProcessRecurring).Methods("POST")
	p.HandleFunc("/recurring-transactions/{id:[0-9]+}", h.UpdateRecurring).Methods("PUT")
	p.HandleFunc("/recurring-transactions/{id:[0-9]+}", h.deleteHandler(repository.RecurringTransactions)).Methods("DELETE")

	p.HandleFunc("/investments", h.ListInvestments).Methods("GET")
	p.HandleFunc("/investments", h.CreateInvestment).Methods("POST")
	p.HandleFunc("/investments/{id:[0-9]+}", h.UpdateInvestment).Methods("PUT")
	p.HandleFunc("/investments/{id:[0-9]+}", h.deleteHandler(repository.Investments)).Methods("DELETE")

	p.HandleFunc("/net-worth", h.NetWorthHistory).Methods("GET")
	p.HandleFunc("/net-worth", h.RecordNetWorth).Methods("POST")

	p.HandleFunc("/notifications", h.Notifications).Methods("GET")
	p.HandleFunc("/analytics/spending-trend", h.SpendingTrend).Methods("GET")
	p.HandleFunc("/analytics/category-breakdown", h.CategoryBreakdown).Methods("GET")
	p.HandleFunc("/analytics/age-of-money", h.AgeOfMoney).Methods("GET")

	p.HandleFunc("/budget-templates", h.BudgetTemplates).Methods("GET")
	p.HandleFunc("/categories/suggest", h.SuggestCategory).Methods("GET")

	return r
}

func currentUser(r *http.Request) *models.User {
	return middleware.UserFromContext(r.Context())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleError maps service errors onto status codes.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *service.Error
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &svcErr):
		writeError(w, http.StatusBadRequest, svcErr.Msg)
	default:
		h.log.WithField("request_id", middleware.RequestID(r.Context())).Errorf("Request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return &service.Error{Kind: service.ErrValidation, Msg: "invalid JSON body: " + err.Error()}
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, &service.Error{Kind: service.ErrValidation, Msg: "invalid id"}
	}
	return id, nil
}

func (h *Handler) created(w http.ResponseWriter, r *http.Request, id int64, err error) {
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"status": "ok", "id": id})
}

func (h *Handler) updated(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// deleteHandler serves DELETE /{collection}/{id} for a user-owned table.
func (h *Handler) deleteHandler(table repository.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		if err := h.svc.Delete(r.Context(), currentUser(r), table, id); err != nil {
			h.handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
