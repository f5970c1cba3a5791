package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kchen52/CardSpendTracker/internal/models"
)

type goalPayload struct {
	Title      string          `json:"title"`
	SpendLimit decimal.Decimal `json:"spend_limit"`
	EndDate    *time.Time      `json:"end_date"`
	Comment    string          `json:"comment"`
}

type cardPayload struct {
	Name string `json:"name"`
	// Color is a pointer so an explicit 0 (transparent black) is
	// distinguishable from an absent field.
	Color *int64 `json:"color"`
	// Goal optionally creates an initial goal together with the card.
	Goal *goalPayload `json:"goal"`
}

func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.repo.ListCards()
	if err != nil {
		log.Printf("Failed to list cards: %v", err)
		http.Error(w, "Failed to list cards", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req cardPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Card name is required", http.StatusBadRequest)
		return
	}
	if req.Goal != nil {
		if req.Goal.Title == "" || !req.Goal.SpendLimit.IsPositive() {
			http.Error(w, "Initial goal needs a title and a positive spend limit", http.StatusBadRequest)
			return
		}
	}

	color := models.DefaultCardColor
	if req.Color != nil {
		color = *req.Color
	}
	card := models.NewCard(req.Name, color)
	id, err := h.repo.InsertCard(card)
	if err != nil {
		log.Printf("Failed to create card: %v", err)
		http.Error(w, "Failed to create card", http.StatusInternalServerError)
		return
	}
	card.ID = id

	if req.Goal != nil {
		goal := models.Goal{
			CardID:     id,
			Title:      req.Goal.Title,
			SpendLimit: req.Goal.SpendLimit,
			EndDate:    req.Goal.EndDate,
			Comment:    req.Goal.Comment,
			CreatedAt:  time.Now(),
		}
		if _, err := h.repo.InsertGoal(goal); err != nil {
			log.Printf("Failed to create initial goal for card %d: %v", id, err)
			http.Error(w, "Card created but initial goal failed", http.StatusInternalServerError)
			return
		}
	}

	respondJSON(w, http.StatusCreated, card)
}

func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	card, err := h.repo.GetCard(id)
	if err != nil {
		http.Error(w, "Card not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req cardPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Card name is required", http.StatusBadRequest)
		return
	}

	card, err := h.repo.GetCard(id)
	if err != nil {
		http.Error(w, "Card not found", http.StatusNotFound)
		return
	}
	card.Name = req.Name
	if req.Color != nil {
		card.Color = *req.Color
	}
	if err := h.repo.UpdateCard(*card); err != nil {
		log.Printf("Failed to update card %d: %v", id, err)
		http.Error(w, "Failed to update card", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := h.repo.DeleteCard(id); err != nil {
		if isNotFound(err) {
			http.Error(w, "Card not found", http.StatusNotFound)
			return
		}
		log.Printf("Failed to delete card %d: %v", id, err)
		http.Error(w, "Failed to delete card", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
