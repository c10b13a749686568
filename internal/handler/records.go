package handler

import (
	"net/http"

	"github.com/Dan9191/money-service/internal/models"
)

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListTransactions(r.Context(), currentUser(r))
	h.list(w, r, orEmpty(items), err)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	t := models.DefaultTransaction(h.svc.Today())
	if err := decode(r, &t); err != nil {
		h.handleError(w, r, err)
		return
	}
	id, err := h.svc.CreateTransaction(r.Context(), currentUser(r), t)
	h.created(w, r, id, err)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var p models.TransactionPatch
	id, err := decodePatch(r, &p)
	if err == nil {
		err = h.svc.UpdateTransaction(r.Context(), currentUser(r), id, p)
	}
	h.updated(w, r, err)
}

func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListBudgets(r.Context(), currentUser(r))
	h.list(w, r, orEmpty(items), err)
}

func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	b := models.DefaultBudget()
	if err := decode(r, &b); err != nil {
		h.handleError(w, r, err)
		return
	}
	id, err := h.svc.CreateBudget(r.Context(), currentUser(r), b)
	h.created(w, r, id, err)
}

func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	var p models.BudgetPatch
	id, err := decodePatch(r, &p)
	if err == nil {
		err = h.svc.UpdateBudget(r.Context(), currentUser(r), id, p)
	}
	h.updated(w, r, err)
}

func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListGoals(r.Context(), currentUser(r))
	h.list(w, r, orEmpty(items), err)
}

func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	g := models.DefaultGoal()
	if err := decode(r, &g); err != nil {
		h.handleError(w, r, err)
		return
	}
	id, err := h.svc.CreateGoal(r.Context(), currentUser(r), g)
	h.created(w, r, id, err)
}

func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var p models.GoalPatch
	id, err := decodePatch(r, &p)
	if err == nil {
		err = h.svc.UpdateGoal(r.Context(), currentUser(r), id, p)
	}
	h.updated(w, r, err)
}

func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListBills(r.Context(), currentUser(r))
	h.list(w, r, orEmpty(items), err)
}

func (h *Handler) CreateBill(w http.ResponseWriter, r *http.Request) {
	b := models.DefaultBill()
	if err := decode(r, &b); err != nil {
		h.handleError(w, r, err)
		return
	}
	id, err := h.svc.CreateBill(r.Context(), currentUser(r), b)
	h.created(w, r, id, err)
}

// UpdateBill reports the bill's status and auto flag after the update.
func (h *Handler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	var p models.BillPatch
	id, err := decodePatch(r, &p)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	state, err := h.svc.UpdateBill(r.Context(), currentUser(r), id, p)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "updated", "auto": state.Auto, "status_now": state.Status})
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListAccounts(r.Context(), currentUser(r))
	h.list(w, r, orEmpty(items), err)
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	a := models.DefaultAccount()
	if err := decode(r, &a); err != nil {
		h.handleError(w, r, err)
		return
	}
	id, err := h.svc.CreateAccount(r.Context(), currentUser(r), a)
	h.created(w, r, id, err)
}

func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var p models.AccountPatch
	id, err := decodePatch(r, &p)
	if err == nil {
		err = h.svc.UpdateAccount(r.Context(), currentUser(r), id, p)
	}
	h.updated(w, r, err)
}

func (h *Handler) ReconcileAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err == nil {
		err = h.svc.ReconcileAccount(r.Context(), currentUser(r), id)
	}
	h.updated(w, r, err)
}

// ListEnvelopes filters by ?month=YYYY-MM, defaulting to the current month.
func (h *Handler) ListEnvelopes(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListEnvelopes(r.Context(), currentUser(r), r.URL.Query().Get("month"))
	h.list(w, r, orEmpty(items), err)
}

func (h *Handler) CreateEnvelope(w http.ResponseWriter, r *http.Request) {
	e := models.DefaultEnvelopeBudget(h.svc.Now().Format("2006-01"))
	if err := decode(r, &e); err != nil {
		h.handleError(w, r, err)
		return
	}
	id, err := h.svc.CreateEnvelope(r.Context(), currentUser(r), e)
	h.created(w, r, id, err)
}

func (h *Handler) UpdateEnvelope(w http.ResponseWriter, r *http.Request) {
	var p models.EnvelopePatch
	id, err := decodePatch(r, &p)
	if err == nil {
		err = h.svc.UpdateEnvelope(r.Context(), currentUser(r), id, p)
	}
	h.updated(w, r, err)
}

func (h *Handler) ListRecurring(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListRecurring(r.Context(), currentUser(r))
	h.list(w, r, orEmpty(items), err)
}

func (h *Handler) CreateRecurring(w http.ResponseWriter, r *http.Request) {
	rt := models.DefaultRecurringTransaction(h.svc.Today())
	if err := decode(r, &rt); err != nil {
		h.handleError(w, r, err)
		return
	}
	id, err := h.svc.CreateRecurring(r.Context(), currentUser(r), rt)
	h.created(w, r, id, err)
}

func (h *Handler) UpdateRecurring(w http.ResponseWriter, r *http.Request) {
	var p models.RecurringPatch
	id, err := decodePatch(r, &p)
	if err == nil {
		err = h.svc.UpdateRecurring(r.Context(), currentUser(r), id, p)
	}
	h.updated(w, r, err)
}

// ProcessRecurring materialises the caller's due recurring transactions.
func (h *Handler) ProcessRecurring(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.ProcessRecurringFor(r.Context(), currentUser(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "created": n})
}

func (h *Handler) ListInvestments(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.svc.Portfolio(r.Context(), currentUser(r))
	h.list(w, r, portfolio, err)
}

func (h *Handler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	inv := models.DefaultInvestment(h.svc.Today())
	if err := decode(r, &inv); err != nil {
		h.handleError(w, r, err)
		return
	}
	id, err := h.svc.CreateInvestment(r.Context(), currentUser(r), inv)
	h.created(w, r, id, err)
}

func (h *Handler) UpdateInvestment(w http.ResponseWriter, r *http.Request) {
	var p models.InvestmentPatch
	id, err := decodePatch(r, &p)
	if err == nil {
		err = h.svc.UpdateInvestment(r.Context(), currentUser(r), id, p)
	}
	h.updated(w, r, err)
}

func (h *Handler) BudgetTemplates(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.BudgetTemplates(r.Context())
	h.list(w, r, orEmpty(items), err)
}

func decodePatch(r *http.Request, patch any) (int64, error) {
	id, err := pathID(r)
	if err != nil {
		return 0, err
	}
	return id, decode(r, patch)
}
