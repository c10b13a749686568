package handler

import (
	"bytes"
	"net/http"

	"github.com/Dan9191/money-service/internal/categorize"
	"github.com/Dan9191/money-service/internal/export"
	"github.com/Dan9191/money-service/internal/service"
)

func (h *Handler) SpendingTrend(w http.ResponseWriter, r *http.Request) {
	points, err := h.svc.SpendingTrend(r.Context(), currentUser(r))
	h.list(w, r, orEmpty(points), err)
}

func (h *Handler) CategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	slices, err := h.svc.CategoryBreakdown(r.Context(), currentUser(r))
	h.list(w, r, orEmpty(slices), err)
}

func (h *Handler) AgeOfMoney(w http.ResponseWriter, r *http.Request) {
	age, err := h.svc.AgeOfMoney(r.Context(), currentUser(r))
	h.list(w, r, age, err)
}

func (h *Handler) NetWorthHistory(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.NetWorthHistory(r.Context(), currentUser(r))
	h.list(w, r, orEmpty(items), err)
}

// RecordNetWorth computes net worth and appends a snapshot on every call.
func (h *Handler) RecordNetWorth(w http.ResponseWriter, r *http.Request) {
	nw, err := h.svc.RecordNetWorth(r.Context(), currentUser(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"status":      "ok",
		"assets":      nw.Assets,
		"liabilities": nw.Liabilities,
		"net_worth":   nw.NetWorth,
	})
}

func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	notes, err := h.svc.Notifications(r.Context(), currentUser(r))
	h.list(w, r, orEmpty(notes), err)
}

func (h *Handler) SuggestCategory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, categorize.Suggest(r.URL.Query().Get("merchant")))
}

// ExportTransactions streams the caller's transactions as CSV, or XML with ?format=xml.
func (h *Handler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	mime, filename, err := export.ContentType(format)
	if err != nil {
		h.handleError(w, r, &service.Error{Kind: service.ErrValidation, Msg: err.Error()})
		return
	}

	txs, err := h.svc.ListTransactions(r.Context(), currentUser(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, txs); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", "attachment;filename="+filename)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
