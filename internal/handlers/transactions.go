package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kchen52/CardSpendTracker/internal/models"
)

type transactionPayload struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        *time.Time      `json:"date"`
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	cardID, ok := urlID(w, r)
	if !ok {
		return
	}
	if _, err := h.repo.GetCard(cardID); err != nil {
		http.Error(w, "Card not found", http.StatusNotFound)
		return
	}
	txns, err := h.repo.ListTransactionsForCard(cardID)
	if err != nil {
		log.Printf("Failed to list transactions for card %d: %v", cardID, err)
		http.Error(w, "Failed to list transactions", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, txns)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	cardID, ok := urlID(w, r)
	if !ok {
		return
	}
	if _, err := h.repo.GetCard(cardID); err != nil {
		http.Error(w, "Card not found", http.StatusNotFound)
		return
	}
	var req transactionPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Amount.IsZero() {
		http.Error(w, "Amount is required", http.StatusBadRequest)
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	tx := models.NewTransaction(cardID, req.Amount, req.Description, date)
	id, err := h.repo.InsertTransaction(tx)
	if err != nil {
		log.Printf("Failed to create transaction for card %d: %v", cardID, err)
		http.Error(w, "Failed to create transaction", http.StatusInternalServerError)
		return
	}
	tx.ID = id
	respondJSON(w, http.StatusCreated, tx)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	tx, err := h.repo.GetTransaction(id)
	if err != nil {
		http.Error(w, "Transaction not found", http.StatusNotFound)
		return
	}
	var req transactionPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Amount.IsZero() {
		http.Error(w, "Amount is required", http.StatusBadRequest)
		return
	}

	tx.Amount = req.Amount
	tx.Description = req.Description
	if req.Date != nil {
		tx.Date = *req.Date
	}
	if err := h.repo.UpdateTransaction(*tx); err != nil {
		log.Printf("Failed to update transaction %d: %v", id, err)
		http.Error(w, "Failed to update transaction", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, tx)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := h.repo.DeleteTransaction(id); err != nil {
		if isNotFound(err) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		log.Printf("Failed to delete transaction %d: %v", id, err)
		http.Error(w, "Failed to delete transaction", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) GetRecentTransactions(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			if parsed > 100 {
				parsed = 100
			}
			limit = parsed
		}
	}
	txns, err := h.repo.ListRecentTransactions(limit)
	if err != nil {
		log.Printf("Failed to list recent transactions: %v", err)
		http.Error(w, "Failed to list transactions", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, txns)
}
