package config

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the process configuration. Every key can be set in config.yaml
// or through the environment (DATABASE_URL, JWT_SECRET, ...).
type Config struct {
	Port           string                   `mapstructure:"port"`
	DBDriver       string                   `mapstructure:"db_driver"`
	DatabaseURL    string                   `mapstructure:"database_url"`
	JWTSecret      string                   `mapstructure:"jwt_secret"`
	JWTExpiration  time.Duration            `mapstructure:"jwt_expiration"`
	AdminSecret    string                   `mapstructure:"admin_secret"`
	AllowOrigins   []string                 `mapstructure:"allow_origins"`
	RequestTimeout time.Duration            `mapstructure:"request_timeout"`
	Thresholds     map[string]ThresholdRule `mapstructure:"thresholds"`
}

var ErrMissingJWTSecret = errors.New("jwt_secret is not set")

// Load reads .env (if any), then config.yaml from path (if any), then the
// environment. Defaults fill whatever is left.
func Load(path string) (*Config, error) {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Printf("no config file in %s, using environment and defaults", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db_driver", "postgres")
	v.SetDefault("database_url", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_expiration", time.Hour)
	v.SetDefault("admin_secret", "")
	v.SetDefault("allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("request_timeout", 10*time.Second)
}
