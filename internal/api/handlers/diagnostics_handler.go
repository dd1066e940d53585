package handlers

import (
	"net/http"
	"os"
	"runtime"

	"github.com/markdave123-py/TypeSpark/internal/core"
	"github.com/markdave123-py/TypeSpark/internal/core/ingestion_engine"
	"github.com/markdave123-py/TypeSpark/internal/services"
)

// storageListLimit bounds the file list in the storage report.
const storageListLimit = 20

type DiagnosticsHandler struct {
	store    core.UploadStore
	ingestor ingestion_engine.Ingestor
	sessions *services.SessionService
	limits   ingestion_engine.Limits
}

func NewDiagnosticsHandler(store core.UploadStore, ing ingestion_engine.Ingestor, sessions *services.SessionService, limits ingestion_engine.Limits) *DiagnosticsHandler {
	return &DiagnosticsHandler{store: store, ingestor: ing, sessions: sessions, limits: limits}
}

func (h *DiagnosticsHandler) System(w http.ResponseWriter, r *http.Request) {
	node, _ := os.Hostname()
	dir := h.store.Dir()
	_, statErr := os.Stat(dir)
	exists := statErr == nil

	writeJSON(w, http.StatusOK, map[string]any{
		"go_version":             runtime.Version(),
		"platform":               runtime.GOOS + "/" + runtime.GOARCH,
		"node":                   node,
		"num_cpu":                runtime.NumCPU(),
		"goroutines":             runtime.NumGoroutine(),
		"upload_folder":          dir,
		"upload_folder_exists":   exists,
		"upload_folder_writable": exists && writable(dir),
		"active_sessions":        h.sessions.Count(),
	})
}

func (h *DiagnosticsHandler) PDF(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"support": h.ingestor.SupportStatus(),
		"limits": map[string]any{
			"max_pages":        h.limits.MaxPages,
			"max_content_size": h.limits.MaxContentSize,
			"timeout_seconds":  h.limits.Timeout.Seconds(),
		},
	})
}

func (h *DiagnosticsHandler) Storage(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(storageListLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Upload folder does not exist")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writable(dir string) bool {
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
