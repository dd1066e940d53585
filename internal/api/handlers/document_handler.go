package handlers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/markdave123-py/TypeSpark/internal/core"
	"github.com/markdave123-py/TypeSpark/internal/core/ingestion_engine"
	objectclient "github.com/markdave123-py/TypeSpark/internal/core/object-client"
	"github.com/markdave123-py/TypeSpark/internal/pkg/logger"
	"github.com/markdave123-py/TypeSpark/internal/services"
)

// DocumentHandler turns an uploaded document into a study session.
//
// archive: optional; when nil uploads stay on local disk only.
type DocumentHandler struct {
	store         core.UploadStore
	archive       core.ObjectClient
	bucket        string
	ingestor      ingestion_engine.Ingestor
	sessions      *services.SessionService
	maxUploadSize int64
	log           *logger.Logger
}

func NewDocumentHandler(store core.UploadStore, archive core.ObjectClient, bucket string, ing ingestion_engine.Ingestor, sessions *services.SessionService, maxUploadSize int64, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{
		store:         store,
		archive:       archive,
		bucket:        bucket,
		ingestor:      ing,
		sessions:      sessions,
		maxUploadSize: maxUploadSize,
		log:           logger.OrNop(log),
	}
}

type uploadResponse struct {
	SessionID  string `json:"session_id"`
	Filename   string `json:"filename"`
	ItemsCount int    `json:"items_count"`
}

// UploadDocument saves the multipart "file" field, extracts study items from
// it and opens a session over them.
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeError(w, http.StatusBadRequest, "No file part")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		// A part with an empty filename is parsed as a plain form value.
		if _, ok := r.MultipartForm.Value["file"]; ok {
			writeError(w, http.StatusBadRequest, "No selected file")
			return
		}
		writeError(w, http.StatusBadRequest, "No file part")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "No selected file")
		return
	}

	path, err := h.store.Save(r.Context(), header.Filename, file)
	if err != nil {
		if errors.Is(err, objectclient.ErrUnsupportedExtension) {
			writeError(w, http.StatusBadRequest, "Invalid file type")
			return
		}
		h.log.Error("failed to save upload", "filename", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}
	filename := objectclient.SanitizeFilename(header.Filename)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.archiveUpload(r.Context(), path, contentType)

	items := h.ingestor.Process(r.Context(), path)
	sess := h.sessions.Create(filename, items)

	h.log.Info("study session created", "session_id", sess.ID, "filename", filename, "items", len(items))

	writeJSON(w, http.StatusOK, uploadResponse{
		SessionID:  sess.ID,
		Filename:   filename,
		ItemsCount: len(items),
	})
}

// archiveUpload copies the stored file to the object store. Failures are
// logged and never fail the upload.
func (h *DocumentHandler) archiveUpload(ctx context.Context, path, contentType string) {
	if h.archive == nil {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		h.log.Warn("archive skipped", "path", path, "error", err)
		return
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	key := "uploads/" + filepath.Base(path)
	url, err := h.archive.UploadFile(ctx, h.bucket, key, f, contentType)
	if err != nil {
		h.log.Warn("archive upload failed", "key", key, "error", err)
		return
	}
	h.log.Debug("upload archived", "url", url)
}
