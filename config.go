package main

import (
	"fmt"

	"marketbe/pkg/images"

	"github.com/caarlos0/env/v6"
)

// Config is parsed from the environment once at startup. Upload tunables are
// deployment-time constants threaded into the pipeline at construction, not
// looked up per request.
type Config struct {
	Port        string   `env:"PORT" envDefault:"8081"`
	DBDSN       string   `env:"DB_DSN"`
	AutoMigrate bool     `env:"DB_AUTO_MIGRATE" envDefault:"true"`
	JWTSecret   string   `env:"JWT_SECRET" envDefault:"dev-insecure-secret-change"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	Upload UploadConfig `envPrefix:"UPLOAD_"`
}

// UploadConfig configures the image ingestion pipeline.
type UploadConfig struct {
	Dir            string `env:"DIR" envDefault:"uploads"`
	Watch          bool   `env:"WATCH" envDefault:"false"`
	MaxBytes       int64  `env:"MAX_BYTES" envDefault:"5242880"`
	TargetBytes    int64  `env:"TARGET_BYTES" envDefault:"2097152"`
	MaxDimension   int    `env:"MAX_DIMENSION" envDefault:"1920"`
	QualityFloor   int    `env:"QUALITY_FLOOR" envDefault:"40"`
	QualityCeiling int    `env:"QUALITY_CEILING" envDefault:"85"`
	QualityStep    int    `env:"QUALITY_STEP" envDefault:"10"`
	MaxFiles       int    `env:"MAX_FILES" envDefault:"5"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Upload.TargetBytes >= cfg.Upload.MaxBytes {
		return Config{}, fmt.Errorf("UPLOAD_TARGET_BYTES (%d) must be below UPLOAD_MAX_BYTES (%d)",
			cfg.Upload.TargetBytes, cfg.Upload.MaxBytes)
	}
	if cfg.Upload.QualityFloor >= cfg.Upload.QualityCeiling {
		return Config{}, fmt.Errorf("UPLOAD_QUALITY_FLOOR (%d) must be below UPLOAD_QUALITY_CEILING (%d)",
			cfg.Upload.QualityFloor, cfg.Upload.QualityCeiling)
	}
	return cfg, nil
}

// policy maps the upload config onto the pipeline policy; iteration bounds
// stay at their defaults.
func (c UploadConfig) policy() images.Policy {
	p := images.DefaultPolicy()
	p.MaxUploadBytes = c.MaxBytes
	p.TargetBytes = c.TargetBytes
	p.MaxDimension = c.MaxDimension
	p.QualityFloor = c.QualityFloor
	p.QualityCeiling = c.QualityCeiling
	p.QualityStep = c.QualityStep
	p.MaxFiles = c.MaxFiles
	return p
}
