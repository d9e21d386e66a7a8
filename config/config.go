package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	KeyServerPort        = "SERVER_PORT"
	KeyTessdataPrefix    = "TESSDATA_PREFIX"
	KeyTesseractLanguage = "TESSERACT_LANGUAGE"
	KeyPaddleAPIURL      = "PADDLEOCR_API_URL"
	KeyMaxFiles          = "MAX_FILES"
	KeyMaxFileSize       = "MAX_FILE_SIZE"
	KeyExtractWorkers    = "EXTRACT_WORKERS"
	KeyMatchTolerance    = "MATCH_TOLERANCE"
	KeyRequireDateMatch  = "REQUIRE_DATE_MATCH"
	KeyLogLevel          = "LOG_LEVEL"
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	TesseractLanguage string
	// PaddleAPIURL enables the PaddleOCR pass when set.
	PaddleAPIURL     string
	MaxFiles         int
	MaxFileSize      int64
	ExtractWorkers   int
	MatchTolerance   decimal.Decimal
	RequireDateMatch bool
	LogLevel         string
}

// LoadConfig reads settings from the environment, after loading an optional
// .env file from the working directory.
func LoadConfig() (*Config, error) {
	return Load("")
}

// Load is LoadConfig with an optional config file (any format viper reads).
// Environment variables override values from the file.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault(KeyServerPort, "8080")
	v.SetDefault(KeyTessdataPrefix, "/usr/share/tesseract-ocr/5/tessdata/")
	v.SetDefault(KeyTesseractLanguage, "eng")
	v.SetDefault(KeyPaddleAPIURL, "")
	v.SetDefault(KeyMaxFiles, 10)
	v.SetDefault(KeyMaxFileSize, 10*1024*1024) // 10 MB
	v.SetDefault(KeyExtractWorkers, 4)
	v.SetDefault(KeyMatchTolerance, "1.00")
	v.SetDefault(KeyRequireDateMatch, false)
	v.SetDefault(KeyLogLevel, "info")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	tolerance, err := decimal.NewFromString(v.GetString(KeyMatchTolerance))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyMatchTolerance, err)
	}
	if !tolerance.IsPositive() {
		return nil, fmt.Errorf("invalid %s: must be positive, got %s", KeyMatchTolerance, tolerance)
	}

	cfg := &Config{
		ServerPort:        v.GetString(KeyServerPort),
		TesseractDataPath: v.GetString(KeyTessdataPrefix),
		TesseractLanguage: v.GetString(KeyTesseractLanguage),
		PaddleAPIURL:      v.GetString(KeyPaddleAPIURL),
		MaxFiles:          v.GetInt(KeyMaxFiles),
		MaxFileSize:       v.GetInt64(KeyMaxFileSize),
		ExtractWorkers:    v.GetInt(KeyExtractWorkers),
		MatchTolerance:    tolerance,
		RequireDateMatch:  v.GetBool(KeyRequireDateMatch),
		LogLevel:          v.GetString(KeyLogLevel),
	}
	if cfg.ExtractWorkers < 1 {
		return nil, fmt.Errorf("invalid %s: must be at least 1", KeyExtractWorkers)
	}
	return cfg, nil
}
