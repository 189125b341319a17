package config

// File is the structure of the intake.yaml configuration file.
// Unset fields keep their defaults.
type File struct {
	Cache  CacheDTO  `yaml:"cache"`
	Upload UploadDTO `yaml:"upload"`
	Batch  BatchDTO  `yaml:"batch"`
	Log    LogDTO    `yaml:"log"`
}

// CacheDTO configures the cache store.
type CacheDTO struct {
	Dir        string `yaml:"dir"`
	IDStrategy string `yaml:"id_strategy"`
}

// UploadDTO configures upload ingestion.
type UploadDTO struct {
	MaxBytes   int64  `yaml:"max_bytes"`
	Duplicates string `yaml:"duplicates"`
}

// BatchDTO configures batch ingestion.
type BatchDTO struct {
	OnError string `yaml:"on_error"`
}

// LogDTO configures logging.
type LogDTO struct {
	Format string `yaml:"format"`
}

// Environment holds the INTAKE_* overrides. Empty values are ignored.
type Environment struct {
	CacheDir       string `env:"INTAKE_CACHE_DIR"`
	IDStrategy     string `env:"INTAKE_ID_STRATEGY"`
	MaxUploadBytes string `env:"INTAKE_MAX_UPLOAD_BYTES"`
	Duplicates     string `env:"INTAKE_DUPLICATES"`
	OnError        string `env:"INTAKE_BATCH_ON_ERROR"`
	LogFormat      string `env:"INTAKE_LOG_FORMAT"`
	NonInteractive string `env:"INTAKE_NON_INTERACTIVE"`
}
