package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/PDHeisenberg/cardwise/internal/middleware"
	"github.com/PDHeisenberg/cardwise/internal/passkit"
	"github.com/PDHeisenberg/cardwise/internal/service"
)

// Handler exposes the service over HTTP
type Handler struct {
	svc     *service.Service
	passes  *passkit.Generator
	passDir string
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, passes *passkit.Generator, passDir string) *Handler {
	return &Handler{svc: svc, passes: passes, passDir: passDir}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// userID extracts the authenticated user id from the request context
func userID(r *http.Request) (int64, bool) {
	raw, ok := middleware.UserID(r.Context())
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// IngestTransaction handles a reported payment event
func (h *Handler) IngestTransaction(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req struct {
		MerchantName string     `json:"merchant_name"`
		Amount       float64    `json:"amount"`
		CardName     string     `json:"card_name"`
		Currency     string     `json:"currency"`
		Timestamp    *time.Time `json:"timestamp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var ts time.Time
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}

	txn, err := h.svc.IngestTransaction(r.Context(), uid, req.MerchantName, req.Amount, req.CardName, req.Currency, ts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

// ListTransactions returns the user's transaction history
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	txns, err := h.svc.ListTransactions(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

// ListCards returns the user's detected card portfolio
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	cards, err := h.svc.ListCards(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

// Recommendations returns the best card per spending category
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	recs, err := h.svc.Recommendations(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// Preview answers which card to use at a merchant without recording anything
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	merchant := r.URL.Query().Get("merchant")
	if merchant == "" {
		writeError(w, http.StatusBadRequest, "merchant query parameter is required")
		return
	}

	product, err := h.svc.PreviewOptimalCard(r.Context(), uid, merchant)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if product == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"optimal_card": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"optimal_card": product})
}

// Summary returns the user's aggregated reward performance
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	summary, err := h.svc.RewardsSummary(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Passes returns unsigned wallet pass documents for the user's per-category
// recommendations
func (h *Handler) Passes(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	recs, err := h.svc.Recommendations(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	passes := h.passes.GenerateAll(recs)
	if r.URL.Query().Get("export") == "true" {
		for i, pass := range passes {
			if err := h.passes.WritePassBundle(pass, h.passDir, recs[i].Category); err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
		}
	}
	writeJSON(w, http.StatusOK, passes)
}
