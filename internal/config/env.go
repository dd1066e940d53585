package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	yaml "gopkg.in/yaml.v3"
)

type Config struct {
	Port              string
	LogMode           string
	UploadFolder      string
	AllowedExtensions []string
	MaxUploadSize     int64
	CORSOrigins       []string

	MaxPages          int
	MaxContentSize    int
	ExtractionTimeout time.Duration

	PrimaryPDFEnabled  bool
	FallbackPDFEnabled bool

	MaxConcurrentExtractions int
	ExtractionWallClock      time.Duration

	S3ArchiveEnabled bool
	AwsAccessKey     string
	AwsSecretKey     string
	AwsRegion        string
	BucketName       string
}

// fileConfig is the optional YAML overlay named by CONFIG_FILE.
// Zero values leave the environment-derived setting untouched.
type fileConfig struct {
	Port              string   `yaml:"port"`
	LogMode           string   `yaml:"logMode"`
	UploadFolder      string   `yaml:"uploadFolder"`
	AllowedExtensions []string `yaml:"allowedExtensions"`
	MaxUploadSize     int64    `yaml:"maxUploadSize"`
	CORSOrigins       []string `yaml:"corsOrigins"`

	Extraction struct {
		MaxPages        int   `yaml:"maxPages"`
		MaxContentSize  int   `yaml:"maxContentSize"`
		TimeoutSeconds  int   `yaml:"timeoutSeconds"`
		PrimaryEnabled  *bool `yaml:"primaryEnabled"`
		FallbackEnabled *bool `yaml:"fallbackEnabled"`
		MaxConcurrent   int   `yaml:"maxConcurrent"`
		WallClockSecond int   `yaml:"wallClockSeconds"`
	} `yaml:"extraction"`

	S3 struct {
		Enabled *bool  `yaml:"enabled"`
		Region  string `yaml:"region"`
		Bucket  string `yaml:"bucket"`
	} `yaml:"s3"`
}

// LoadConfig loads .env (if present), the environment and the optional
// CONFIG_FILE overlay, in that order.
func LoadConfig() (*Config, error) {

	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "5002"),
		LogMode:           getEnv("LOG_MODE", "dev"),
		UploadFolder:      getEnv("UPLOAD_FOLDER", "uploads"),
		AllowedExtensions: normalizeExtensions(getEnvList("ALLOWED_EXTENSIONS", []string{"pdf", "txt"})),
		MaxUploadSize:     int64(getEnvInt("MAX_UPLOAD_SIZE", 10*1024*1024)),
		CORSOrigins:       getEnvList("CORS_ORIGINS", []string{"*"}),

		MaxPages:          getEnvInt("MAX_PDF_PAGES", 10),
		MaxContentSize:    getEnvInt("MAX_CONTENT_SIZE_PER_DOC", 50*1024),
		ExtractionTimeout: time.Duration(getEnvInt("EXTRACTION_TIMEOUT_SECONDS", 30)) * time.Second,

		PrimaryPDFEnabled:  getEnvBool("PDF_PRIMARY_ENABLED", true),
		FallbackPDFEnabled: getEnvBool("PDF_FALLBACK_ENABLED", true),

		MaxConcurrentExtractions: getEnvInt("MAX_CONCURRENT_EXTRACTIONS", 2),
		ExtractionWallClock:      time.Duration(getEnvInt("EXTRACTION_WALL_CLOCK_SECONDS", 45)) * time.Second,

		S3ArchiveEnabled: getEnvBool("S3_ARCHIVE_ENABLED", false),
		AwsAccessKey:     getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey:     getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:        getEnv("AWS_REGION", "us-east-2"),
		BucketName:       getEnv("BUCKET_NAME", "typespark-uploads"),
	}

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&c.Port, fc.Port)
	setString(&c.LogMode, fc.LogMode)
	setString(&c.UploadFolder, fc.UploadFolder)
	if len(fc.AllowedExtensions) > 0 {
		c.AllowedExtensions = normalizeExtensions(fc.AllowedExtensions)
	}
	if fc.MaxUploadSize > 0 {
		c.MaxUploadSize = fc.MaxUploadSize
	}
	if len(fc.CORSOrigins) > 0 {
		c.CORSOrigins = fc.CORSOrigins
	}

	setInt(&c.MaxPages, fc.Extraction.MaxPages)
	setInt(&c.MaxContentSize, fc.Extraction.MaxContentSize)
	if fc.Extraction.TimeoutSeconds > 0 {
		c.ExtractionTimeout = time.Duration(fc.Extraction.TimeoutSeconds) * time.Second
	}
	setBool(&c.PrimaryPDFEnabled, fc.Extraction.PrimaryEnabled)
	setBool(&c.FallbackPDFEnabled, fc.Extraction.FallbackEnabled)
	setInt(&c.MaxConcurrentExtractions, fc.Extraction.MaxConcurrent)
	if fc.Extraction.WallClockSecond > 0 {
		c.ExtractionWallClock = time.Duration(fc.Extraction.WallClockSecond) * time.Second
	}

	setBool(&c.S3ArchiveEnabled, fc.S3.Enabled)
	setString(&c.AwsRegion, fc.S3.Region)
	setString(&c.BucketName, fc.S3.Bucket)
	return nil
}

func (c *Config) validate() error {
	if c.MaxPages <= 0 {
		return fmt.Errorf("MAX_PDF_PAGES must be positive, got %d", c.MaxPages)
	}
	if c.MaxContentSize <= 0 {
		return fmt.Errorf("MAX_CONTENT_SIZE_PER_DOC must be positive, got %d", c.MaxContentSize)
	}
	if c.ExtractionTimeout <= 0 {
		return fmt.Errorf("EXTRACTION_TIMEOUT_SECONDS must be positive")
	}
	if c.MaxConcurrentExtractions <= 0 {
		c.MaxConcurrentExtractions = 1
	}
	if c.S3ArchiveEnabled && (c.AwsAccessKey == "" || c.AwsSecretKey == "") {
		return fmt.Errorf("S3_ARCHIVE_ENABLED requires AWS_ACCESS_KEY and AWS_SECRET_KEY")
	}
	return nil
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARN: %s=%q not an int, using default %d\n", key, v, def)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARN: %s=%q not a bool, using default %t\n", key, v, def)
		return def
	}
	return b
}

// getEnvList reads a comma separated list. A JSON-ish ["pdf", "txt"] value
// (as written in older .env files) is accepted too.
func getEnvList(key string, def []string) []string {
	v := strings.TrimSpace(getEnv(key, ""))
	if v == "" {
		return def
	}
	v = strings.Trim(v, "[]")
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.Trim(strings.TrimSpace(p), `"'`); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// normalizeExtensions lowercases and strips leading dots: ".PDF" -> "pdf".
func normalizeExtensions(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.ToLower(strings.TrimLeft(strings.TrimSpace(p), "."))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
