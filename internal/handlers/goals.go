package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/kchen52/CardSpendTracker/internal/models"
)

func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	cardID, ok := urlID(w, r)
	if !ok {
		return
	}
	if _, err := h.repo.GetCard(cardID); err != nil {
		http.Error(w, "Card not found", http.StatusNotFound)
		return
	}
	goals, err := h.repo.ListGoalsForCard(cardID)
	if err != nil {
		log.Printf("Failed to list goals for card %d: %v", cardID, err)
		http.Error(w, "Failed to list goals", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, goals)
}

func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	cardID, ok := urlID(w, r)
	if !ok {
		return
	}
	if _, err := h.repo.GetCard(cardID); err != nil {
		http.Error(w, "Card not found", http.StatusNotFound)
		return
	}
	var req goalPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		http.Error(w, "Goal title is required", http.StatusBadRequest)
		return
	}
	if !req.SpendLimit.IsPositive() {
		http.Error(w, "Spend limit must be positive", http.StatusBadRequest)
		return
	}

	goal := models.Goal{
		CardID:     cardID,
		Title:      req.Title,
		SpendLimit: req.SpendLimit,
		EndDate:    req.EndDate,
		Comment:    req.Comment,
		CreatedAt:  time.Now(),
	}
	id, err := h.repo.InsertGoal(goal)
	if err != nil {
		log.Printf("Failed to create goal for card %d: %v", cardID, err)
		http.Error(w, "Failed to create goal", http.StatusInternalServerError)
		return
	}
	goal.ID = id
	respondJSON(w, http.StatusCreated, goal)
}

func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	goal, err := h.repo.GetGoal(id)
	if err != nil {
		http.Error(w, "Goal not found", http.StatusNotFound)
		return
	}
	var req goalPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		http.Error(w, "Goal title is required", http.StatusBadRequest)
		return
	}
	if !req.SpendLimit.IsPositive() {
		http.Error(w, "Spend limit must be positive", http.StatusBadRequest)
		return
	}

	goal.Title = req.Title
	goal.SpendLimit = req.SpendLimit
	goal.EndDate = req.EndDate
	goal.Comment = req.Comment
	if err := h.repo.UpdateGoal(*goal); err != nil {
		log.Printf("Failed to update goal %d: %v", id, err)
		http.Error(w, "Failed to update goal", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := h.repo.DeleteGoal(id); err != nil {
		if isNotFound(err) {
			http.Error(w, "Goal not found", http.StatusNotFound)
			return
		}
		log.Printf("Failed to delete goal %d: %v", id, err)
		http.Error(w, "Failed to delete goal", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
