package worker

import (
	"context"
	"log"
	"time"

	"github.com/kchen52/CardSpendTracker/internal/backup"
)

// AutoExporter periodically writes a full backup document into the
// backup directory.
type AutoExporter struct {
	manager  *backup.Manager
	files    *backup.FileStore
	interval time.Duration
}

func NewAutoExporter(manager *backup.Manager, files *backup.FileStore, interval time.Duration) *AutoExporter {
	return &AutoExporter{manager: manager, files: files, interval: interval}
}

// Run blocks until ctx is cancelled. A non-positive interval disables
// the exporter.
func (w *AutoExporter) Run(ctx context.Context) {
	if w.interval <= 0 {
		return
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.ExportOnce()
		}
	}
}

// ExportOnce writes one timestamped backup, logging failures instead
// of returning them; the next tick simply tries again.
func (w *AutoExporter) ExportOnce() {
	doc, err := w.manager.ExportData()
	if err != nil {
		log.Printf("auto export failed: %v", err)
		return
	}
	name := w.manager.GenerateFileName()
	if !w.files.Write(name, doc) {
		log.Printf("auto export: failed to write %s", name)
		return
	}
	log.Printf("auto export: wrote %s", name)
}
