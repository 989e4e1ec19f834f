package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config 서버 구동에 필요한 환경 설정
type Config struct {
	Port              string `envconfig:"PORT" default:"8080"`
	DBType            string `envconfig:"DB_TYPE" default:"sqlite"` // sqlite | mysql
	DBDSN             string `envconfig:"DB_DSN" default:"./inventory.db"`
	JWTSecret         string `envconfig:"JWT_SECRET" default:"change-this-secret-in-production"`
	TokenTTLHours     int    `envconfig:"TOKEN_TTL_HOURS" default:"24"`
	SeedSampleData    bool   `envconfig:"SEED_SAMPLE_DATA" default:"false"`
	LogDir            string `envconfig:"LOG_DIR" default:"./logs"`
	LogLevel          string `envconfig:"LOG_LEVEL" default:"info"`
	LowStockThreshold int    `envconfig:"LOW_STOCK_THRESHOLD" default:"5"`
}

// Load .env 파일(있으면)과 환경변수에서 설정을 읽어온다.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if cfg.DBType != "sqlite" && cfg.DBType != "mysql" {
		return nil, fmt.Errorf("unsupported DB_TYPE: %s", cfg.DBType)
	}
	if cfg.TokenTTLHours < 1 {
		cfg.TokenTTLHours = 24
	}

	return &cfg, nil
}
