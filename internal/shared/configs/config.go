package configs

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Log     LogConfig     `mapstructure:"log" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Reports ReportsConfig `mapstructure:"reports" validate:"required"`
	Stream  StreamConfig  `mapstructure:"stream" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// StorageConfig holds log store configuration.
// Driver "sqlite" persists to Path; driver "memory" keeps everything in-process.
type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite memory"`
	Path   string `mapstructure:"path" validate:"required_if=Driver sqlite"`
}

// ReportsConfig holds report export configuration.
type ReportsConfig struct {
	ExportDir string `mapstructure:"export_dir" validate:"required"`
}

// StreamConfig holds ingestion queue configuration.
type StreamConfig struct {
	Partitions int `mapstructure:"partitions" validate:"required,min=1"`
	Buffer     int `mapstructure:"buffer" validate:"required,min=1"`
}
