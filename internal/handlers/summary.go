package handlers

import "net/http"

// Summary returns the aggregation pipeline's latest snapshot: one
// entry per card, newest card first, each with total spend and goal
// progress.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.pipeline.Latest())
}
