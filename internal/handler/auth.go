package handler

import (
	"net/http"
	"time"

	"github.com/Dan9191/money-service/internal/models"
)

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var c models.Credentials
	if err := decode(r, &c); err != nil {
		h.handleError(w, r, err)
		return
	}
	res, err := h.svc.Register(r.Context(), c)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var c models.Credentials
	if err := decode(r, &c); err != nil {
		h.handleError(w, r, err)
		return
	}
	res, err := h.svc.Login(r.Context(), c)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   "MyMoney Pro Backend",
		"timestamp": h.svc.Now().Format(time.RFC3339),
	})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r))
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var p models.ProfilePatch
	if err := decode(r, &p); err != nil {
		h.handleError(w, r, err)
		return
	}
	user, err := h.svc.UpdateProfile(r.Context(), currentUser(r), p)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "updated", "user": user})
}
