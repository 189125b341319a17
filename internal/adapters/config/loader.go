// Package config provides the configuration loader for intake.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	env "github.com/Netflix/go-env"
	"github.com/spf13/afero"
	"go.trai.ch/intake/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader: intake.yaml first, then INTAKE_* variables.
type Loader struct {
	fs      afero.Fs
	environ func() []string
}

// NewLoader creates a Loader reading files from fsys and variables from environ.
func NewLoader(fsys afero.Fs, environ func() []string) *Loader {
	if environ == nil {
		environ = os.Environ
	}
	return &Loader{fs: fsys, environ: environ}
}

// Load resolves the configuration for cwd. A missing intake.yaml yields the defaults.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(cwd, domain.ConfigFileName)
	data, err := afero.ReadFile(l.fs, path)
	switch {
	case err == nil:
		if err := applyFile(cfg, path, data); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, errors.Join(domain.ErrConfigReadFailed, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path))
	}

	if err := l.applyEnvironment(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFile(cfg *domain.Config, path string, data []byte) error {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return errors.Join(domain.ErrConfigParseFailed, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path))
	}

	setString(&cfg.CacheDir, file.Cache.Dir)
	setEnum(&cfg.IDStrategy, file.Cache.IDStrategy)
	if file.Upload.MaxBytes != 0 {
		cfg.MaxUploadBytes = file.Upload.MaxBytes
	}
	setEnum(&cfg.Duplicates, file.Upload.Duplicates)
	setEnum(&cfg.OnError, file.Batch.OnError)
	setEnum(&cfg.LogFormat, file.Log.Format)
	return nil
}

func (l *Loader) applyEnvironment(cfg *domain.Config) error {
	es, err := env.EnvironToEnvSet(l.environ())
	if err != nil {
		return errors.Join(domain.ErrInvalidConfig, zerr.Wrap(err, "failed to read environment"))
	}
	var vars Environment
	if err := env.Unmarshal(es, &vars); err != nil {
		return errors.Join(domain.ErrInvalidConfig, zerr.Wrap(err, "failed to decode environment"))
	}

	setString(&cfg.CacheDir, vars.CacheDir)
	setEnum(&cfg.IDStrategy, vars.IDStrategy)
	setEnum(&cfg.Duplicates, vars.Duplicates)
	setEnum(&cfg.OnError, vars.OnError)
	setEnum(&cfg.LogFormat, vars.LogFormat)

	if vars.MaxUploadBytes != "" {
		n, err := strconv.ParseInt(vars.MaxUploadBytes, 10, 64)
		if err != nil {
			return errors.Join(domain.ErrInvalidConfig, zerr.With(zerr.Wrap(err, "INTAKE_MAX_UPLOAD_BYTES is not an integer"), "value", vars.MaxUploadBytes))
		}
		cfg.MaxUploadBytes = n
	}
	if vars.NonInteractive != "" {
		b, err := strconv.ParseBool(vars.NonInteractive)
		if err != nil {
			return errors.Join(domain.ErrInvalidConfig, zerr.With(zerr.Wrap(err, "INTAKE_NON_INTERACTIVE is not a boolean"), "value", vars.NonInteractive))
		}
		cfg.NonInteractive = b
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setEnum[T ~string](dst *T, v string) {
	if v != "" {
		*dst = T(v)
	}
}
