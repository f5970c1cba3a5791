package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
)

// Export streams the current store state as a backup document.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.manager.ExportData()
	if err != nil {
		log.Printf("Export failed: %v", err)
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+h.manager.GenerateFileName())
	w.Write([]byte(doc))
}

// Import reconciles a backup document posted in the request body. The
// result always carries counts and the error list; per-record problems
// do not fail the request.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	result := h.manager.ImportData(string(body))
	respondJSON(w, http.StatusOK, result)
}

// ListBackups lists the documents in the backup directory, newest
// first.
func (h *Handler) ListBackups(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.files.List())
}

// ExportToBackupDir writes a timestamped backup into the backup
// directory and returns its file name.
func (h *Handler) ExportToBackupDir(w http.ResponseWriter, r *http.Request) {
	doc, err := h.manager.ExportData()
	if err != nil {
		log.Printf("Backup export failed: %v", err)
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}
	name := h.manager.GenerateFileName()
	if !h.files.Write(name, doc) {
		log.Printf("Backup export: failed to write %s", name)
		http.Error(w, "Failed to write backup file", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"file": name})
}

// ImportFromBackupDir restores a named file from the backup directory.
func (h *Handler) ImportFromBackupDir(w http.ResponseWriter, r *http.Request) {
	var req struct {
		File string `json:"file"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.File == "" {
		http.Error(w, "Backup file name is required", http.StatusBadRequest)
		return
	}
	doc, ok := h.files.Read(req.File)
	if !ok {
		http.Error(w, "Backup file not found", http.StatusNotFound)
		return
	}
	result := h.manager.ImportData(doc)
	respondJSON(w, http.StatusOK, result)
}
