package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

// IDStrategy selects how cache identifiers are generated.
type IDStrategy string

const (
	// IDRandom draws every identifier independently from a random source.
	IDRandom IDStrategy = "random"
	// IDSequential issues identifiers from a monotonic counter.
	IDSequential IDStrategy = "sequential"
)

// DuplicatePolicy decides what happens when a display name is ingested twice.
type DuplicatePolicy string

const (
	// DuplicatesOverwrite lets the last ingestion win.
	DuplicatesOverwrite DuplicatePolicy = "overwrite"
	// DuplicatesReject fails the second ingestion with ErrDuplicateName.
	DuplicatesReject DuplicatePolicy = "reject"
)

// FailurePolicy decides how a batch reacts to a failing item.
type FailurePolicy string

const (
	// FailAbort stops the batch at the first failing item.
	FailAbort FailurePolicy = "abort"
	// FailContinue processes every item and reports all failures together.
	FailContinue FailurePolicy = "continue"
)

// LogFormat selects the log output format.
type LogFormat string

const (
	// LogPretty is the human readable, coloured format.
	LogPretty LogFormat = "pretty"
	// LogJSON emits one JSON object per record.
	LogJSON LogFormat = "json"
)

// Config is the resolved configuration of intake.
type Config struct {
	CacheDir       string
	IDStrategy     IDStrategy
	MaxUploadBytes int64
	Duplicates     DuplicatePolicy
	OnError        FailurePolicy
	LogFormat      LogFormat
	NonInteractive bool
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		CacheDir:       DefaultCachePath(),
		IDStrategy:     IDRandom,
		MaxUploadBytes: MaxUploadSize,
		Duplicates:     DuplicatesOverwrite,
		OnError:        FailAbort,
		LogFormat:      LogPretty,
	}
}

// Validate checks every enumerated value of the configuration.
func (c *Config) Validate() error {
	if c.CacheDir == "" {
		return errors.Join(ErrInvalidConfig, zerr.New("cache.dir must not be empty"))
	}
	if c.MaxUploadBytes <= 0 {
		return errors.Join(ErrInvalidConfig, zerr.With(zerr.New("upload.max_bytes must be positive"), "value", c.MaxUploadBytes))
	}
	if c.MaxUploadBytes > MaxUploadSize {
		detail := zerr.With(zerr.New("upload.max_bytes may only lower the upload limit"), "value", c.MaxUploadBytes)
		return errors.Join(ErrInvalidConfig, zerr.With(detail, "max", MaxUploadSize))
	}
	switch c.IDStrategy {
	case IDRandom, IDSequential:
	default:
		return invalidValue("cache.id_strategy", string(c.IDStrategy))
	}
	switch c.Duplicates {
	case DuplicatesOverwrite, DuplicatesReject:
	default:
		return invalidValue("upload.duplicates", string(c.Duplicates))
	}
	switch c.OnError {
	case FailAbort, FailContinue:
	default:
		return invalidValue("batch.on_error", string(c.OnError))
	}
	switch c.LogFormat {
	case LogPretty, LogJSON:
	default:
		return invalidValue("log.format", string(c.LogFormat))
	}
	return nil
}

func invalidValue(key, value string) error {
	return errors.Join(ErrInvalidConfig, zerr.With(zerr.With(zerr.New("unsupported value"), "key", key), "value", value))
}
