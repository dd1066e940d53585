// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/markdave123-py/TypeSpark/internal/api/handlers"
	"github.com/markdave123-py/TypeSpark/internal/config"
	"github.com/markdave123-py/TypeSpark/internal/core"
	"github.com/markdave123-py/TypeSpark/internal/core/ingestion_engine"
	objectclient "github.com/markdave123-py/TypeSpark/internal/core/object-client"
	"github.com/markdave123-py/TypeSpark/internal/pkg/logger"
	"github.com/markdave123-py/TypeSpark/internal/services"
)

type App struct {
	Store    core.UploadStore
	Archive  core.ObjectClient
	Ingestor ingestion_engine.Ingestor
	Sessions *services.SessionService
	Server   *Server
}

func NewApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	log = logger.OrNop(log)

	store, err := objectclient.NewLocalStore(cfg.UploadFolder, cfg.AllowedExtensions)
	if err != nil {
		return nil, err
	}
	log.Info("upload store ready", "dir", store.Dir(), "extensions", cfg.AllowedExtensions)

	var (
		archive core.ObjectClient
		bucket  string
	)
	if cfg.S3ArchiveEnabled {
		s3c, err := objectclient.NewS3Client(appCtx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("couldn't initialize the s3 archive: %w", err)
		}
		archive, bucket = s3c, s3c.Bucket()
	}

	limits := ingestion_engine.Limits{
		MaxPages:       cfg.MaxPages,
		MaxContentSize: cfg.MaxContentSize,
		Timeout:        cfg.ExtractionTimeout,
	}
	backends := BuildBackends(cfg)
	st := backends.SupportStatus()
	log.Info("pdf support",
		"supported", st.Supported,
		"primary", st.PrimaryBackend,
		"fallback", st.FallbackBackend,
	)

	extractor := ingestion_engine.NewTextExtractor(backends, limits, log.With("component", "extractor"))
	items := ingestion_engine.NewItemExtractor(extractor, log.With("component", "items"))
	ing := ingestion_engine.NewDocumentIngestor(extractor, items, cfg.MaxConcurrentExtractions, cfg.ExtractionWallClock, log)

	sessions := services.NewSessionService()

	server := NewServer(cfg, Handlers{
		Documents:   handlers.NewDocumentHandler(store, archive, bucket, ing, sessions, cfg.MaxUploadSize, log),
		Sessions:    handlers.NewSessionHandler(sessions, log),
		Diagnostics: handlers.NewDiagnosticsHandler(store, ing, sessions, limits),
	}, log)

	return &App{
		Store:    store,
		Archive:  archive,
		Ingestor: ing,
		Sessions: sessions,
		Server:   server,
	}, nil
}

// BuildBackends selects the extraction backends enabled in cfg. Interface
// fields stay nil for disabled backends so the extractor sees them as absent.
func BuildBackends(cfg *config.Config) ingestion_engine.Backends {
	b := ingestion_engine.Backends{
		Text:   ingestion_engine.NewPlainTextOpener(),
		Office: ingestion_engine.NewDocconvOpener(),
	}
	if cfg.PrimaryPDFEnabled {
		b.Primary = ingestion_engine.NewTabulaOpener()
	}
	if cfg.FallbackPDFEnabled {
		b.Fallback = ingestion_engine.NewLedongthucOpener()
	}
	return b
}
