package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	cerr "github.com/saeidalz13/battleship-cpu/internal/error"
	"github.com/saeidalz13/battleship-cpu/internal/logging"
)

const (
	KeyStage                  = "stage"
	KeyPort                   = "port"
	KeyLogLevel               = "log_level"
	KeyDatabaseUrl            = "database_url"
	KeyLocalDbPath            = "local_db_path"
	KeyMigrationDir           = "migration_dir"
	KeyMaxPlacementAttempts   = "max_placement_attempts"
	KeySeparateShips          = "separate_ships"
	KeySessionCleanupInterval = "session_cleanup_interval"
	KeyReconnectGracePeriod   = "reconnect_grace_period"
)

type Config struct {
	Stage    string
	Port     int
	LogLevel string

	DatabaseUrl  string
	LocalDbPath  string
	MigrationDir string

	MaxPlacementAttempts int
	SeparateShips        bool

	SessionCleanupInterval time.Duration
	ReconnectGracePeriod   time.Duration
}

func setDefaults() {
	viper.SetDefault(KeyStage, logging.StageDev)
	viper.SetDefault(KeyPort, 9191)
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyDatabaseUrl, "")
	viper.SetDefault(KeyLocalDbPath, "battleship.db")
	viper.SetDefault(KeyMigrationDir, "file://db/migration")
	viper.SetDefault(KeyMaxPlacementAttempts, 100)
	viper.SetDefault(KeySeparateShips, false)
	viper.SetDefault(KeySessionCleanupInterval, "20m")
	viper.SetDefault(KeyReconnectGracePeriod, "2m")
}

// Load reads the configuration from the environment. Outside of prod the
// values of envFile are used for keys the environment does not set; a
// missing envFile is not an error.
func Load(envFile string) (Config, error) {
	setDefaults()

	if os.Getenv("STAGE") != logging.StageProd && envFile != "" {
		values, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
		for key, value := range values {
			viper.SetDefault(strings.ToLower(key), value)
		}
	}

	viper.AutomaticEnv()

	cfg := Config{
		Stage:                  viper.GetString(KeyStage),
		Port:                   viper.GetInt(KeyPort),
		LogLevel:               viper.GetString(KeyLogLevel),
		DatabaseUrl:            viper.GetString(KeyDatabaseUrl),
		LocalDbPath:            viper.GetString(KeyLocalDbPath),
		MigrationDir:           viper.GetString(KeyMigrationDir),
		MaxPlacementAttempts:   viper.GetInt(KeyMaxPlacementAttempts),
		SeparateShips:          viper.GetBool(KeySeparateShips),
		SessionCleanupInterval: viper.GetDuration(KeySessionCleanupInterval),
		ReconnectGracePeriod:   viper.GetDuration(KeyReconnectGracePeriod),
	}

	if cfg.Stage != logging.StageDev && cfg.Stage != logging.StageProd {
		return Config{}, cerr.ErrInvalidStage(cfg.Stage)
	}
	return cfg, nil
}
