package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kchen52/CardSpendTracker/internal/aggregate"
	"github.com/kchen52/CardSpendTracker/internal/backup"
	"github.com/kchen52/CardSpendTracker/internal/config"
	"github.com/kchen52/CardSpendTracker/internal/database"
	"github.com/kchen52/CardSpendTracker/internal/handlers"
	"github.com/kchen52/CardSpendTracker/internal/worker"
)

func main() {
	cfg := config.Load()

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := database.NewRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pipeline := aggregate.New(repo)
	go pipeline.Run(ctx)

	manager := backup.NewManager(repo)
	files, err := backup.NewFileStore(cfg.BackupDir)
	if err != nil {
		log.Fatalf("Failed to initialize backup directory: %v", err)
	}

	exporter := worker.NewAutoExporter(manager, files, cfg.AutoExportInterval)
	go exporter.Run(ctx)

	h := handlers.New(repo, pipeline, manager, files)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// API - Cards
	r.Get("/api/cards", h.ListCards)
	r.Post("/api/cards", h.CreateCard)
	r.Get("/api/cards/{id}", h.GetCard)
	r.Put("/api/cards/{id}", h.UpdateCard)
	r.Delete("/api/cards/{id}", h.DeleteCard)

	// API - Goals
	r.Get("/api/cards/{id}/goals", h.ListGoals)
	r.Post("/api/cards/{id}/goals", h.CreateGoal)
	r.Put("/api/goals/{id}", h.UpdateGoal)
	r.Delete("/api/goals/{id}", h.DeleteGoal)

	// API - Transactions
	r.Get("/api/cards/{id}/transactions", h.ListTransactions)
	r.Post("/api/cards/{id}/transactions", h.CreateTransaction)
	r.Put("/api/transactions/{id}", h.UpdateTransaction)
	r.Delete("/api/transactions/{id}", h.DeleteTransaction)
	r.Get("/api/transactions/recent", h.GetRecentTransactions)

	// API - Summary
	r.Get("/api/summary", h.Summary)

	// API - Backup
	r.Get("/api/export", h.Export)
	r.Post("/api/import", h.Import)
	r.Get("/api/backup", h.ListBackups)
	r.Post("/api/backup/export", h.ExportToBackupDir)
	r.Post("/api/backup/import", h.ImportFromBackupDir)

	log.Printf("Server starting on http://localhost:%s", cfg.ServerPort)
	if err := http.ListenAndServe(":"+cfg.ServerPort, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
