package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_FILE", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "5002" || cfg.MaxPages != 10 || cfg.MaxContentSize != 51200 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.ExtractionTimeout != 30*time.Second || cfg.ExtractionWallClock != 45*time.Second {
		t.Fatalf("unexpected timeouts %v %v", cfg.ExtractionTimeout, cfg.ExtractionWallClock)
	}
	if !reflect.DeepEqual(cfg.AllowedExtensions, []string{"pdf", "txt"}) {
		t.Fatalf("unexpected extensions %v", cfg.AllowedExtensions)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ALLOWED_EXTENSIONS", `[".PDF", "txt", "md"]`)
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://App.example.com")
	t.Setenv("MAX_PDF_PAGES", "25")
	t.Setenv("PDF_PRIMARY_ENABLED", "false")
	t.Setenv("MAX_CONCURRENT_EXTRACTIONS", "not-a-number")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(cfg.AllowedExtensions, []string{"pdf", "txt", "md"}) {
		t.Fatalf("unexpected extensions %v", cfg.AllowedExtensions)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"http://localhost:5173", "https://App.example.com"}) {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.MaxPages != 25 || cfg.PrimaryPDFEnabled || cfg.MaxConcurrentExtractions != 2 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadConfig_FileOverlay(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "typespark.yaml")
	yaml := `
port: "8080"
allowedExtensions: [pdf]
extraction:
  maxPages: 3
  timeoutSeconds: 5
  fallbackEnabled: false
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MAX_PDF_PAGES", "25")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.MaxPages != 3 || cfg.ExtractionTimeout != 5*time.Second || cfg.FallbackPDFEnabled {
		t.Fatalf("overlay not applied: %+v", cfg)
	}
	if !cfg.PrimaryPDFEnabled {
		t.Fatalf("unset overlay field changed primary backend")
	}
	if !reflect.DeepEqual(cfg.AllowedExtensions, []string{"pdf"}) {
		t.Fatalf("unexpected extensions %v", cfg.AllowedExtensions)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("MAX_PDF_PAGES", "0")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected an error for MAX_PDF_PAGES=0")
	}

	t.Setenv("MAX_PDF_PAGES", "10")
	t.Setenv("S3_ARCHIVE_ENABLED", "true")
	t.Setenv("AWS_ACCESS_KEY", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected an error for S3 without credentials")
	}

	t.Setenv("S3_ARCHIVE_ENABLED", "false")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
