package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Log     LogConfig     `mapstructure:"log" validate:"required"`
	Store   StoreConfig   `mapstructure:"store" validate:"required"`
	Stats   StatsConfig   `mapstructure:"stats" validate:"required"`
	SRS     SRSConfig     `mapstructure:"srs" validate:"required"`
	Extract ExtractConfig `mapstructure:"extract" validate:"required"`
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// StoreConfig selects and configures the card store.
type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite postgres"`

	// SQLitePath is the database file of the sqlite driver. Empty means the
	// default location under the XDG data directory.
	SQLitePath string `mapstructure:"sqlite_path"`

	DatabaseURL string `mapstructure:"database_url" validate:"required_if=Driver postgres"`
}

// StatsConfig contains the thresholds used when aggregating card statistics.
type StatsConfig struct {
	MatureIntervalDays float64 `mapstructure:"mature_interval_days" validate:"gt=0"`
	WeekHorizonDays    int     `mapstructure:"week_horizon_days" validate:"gt=0"`
	MonthHorizonDays   int     `mapstructure:"month_horizon_days" validate:"gtefield=WeekHorizonDays"`
	HistogramBins      int     `mapstructure:"histogram_bins" validate:"gt=0,lte=100"`
}

// SRSConfig contains the recall model parameters.
type SRSConfig struct {
	Decay float64 `mapstructure:"decay" validate:"lt=0"`
}

// ExtractConfig controls card extraction.
type ExtractConfig struct {
	// SkipInvalid keeps the valid cards of a file that also has malformed
	// segments instead of failing the whole file.
	SkipInvalid bool `mapstructure:"skip_invalid"`
	Workers     int  `mapstructure:"workers" validate:"gt=0,lte=64"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port           int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}
