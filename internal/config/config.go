package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig holds the statutory constants the deduction calculator runs
// with. Defaults match the rules in force: 12% employee provident fund and a
// flat professional tax per period.
type PayrollConfig struct {
	PFRate                 decimal.Decimal
	ProfessionalTax        decimal.Decimal
	AnnualLeaveEntitlement int
	MaterializeParallelism int
	AutorunInterval        string
}

func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments; real env wins.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hrpulse-payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	pfRate, err := decimal.NewFromString(getEnv("PAYROLL_PF_RATE", "0.12"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_PF_RATE: %w", err)
	}
	professionalTax, err := decimal.NewFromString(getEnv("PAYROLL_PROFESSIONAL_TAX", "200"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_PROFESSIONAL_TAX: %w", err)
	}
	entitlement, err := strconv.Atoi(getEnv("PAYROLL_ANNUAL_LEAVE_ENTITLEMENT", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_ANNUAL_LEAVE_ENTITLEMENT: %w", err)
	}
	parallelism, err := strconv.Atoi(getEnv("PAYROLL_MATERIALIZE_PARALLELISM", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_MATERIALIZE_PARALLELISM: %w", err)
	}

	config.Payroll = PayrollConfig{
		PFRate:                 pfRate,
		ProfessionalTax:        professionalTax,
		AnnualLeaveEntitlement: entitlement,
		MaterializeParallelism: parallelism,
		AutorunInterval:        getEnv("PAYROLL_AUTORUN_INTERVAL", "1h"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT must be a valid port number")
	}
	if c.Payroll.PFRate.IsNegative() || c.Payroll.PFRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("PAYROLL_PF_RATE must be between 0 and 1")
	}
	if c.Payroll.ProfessionalTax.IsNegative() {
		return fmt.Errorf("PAYROLL_PROFESSIONAL_TAX must be non-negative")
	}
	if c.Payroll.AnnualLeaveEntitlement <= 0 {
		return fmt.Errorf("PAYROLL_ANNUAL_LEAVE_ENTITLEMENT must be positive")
	}
	if c.Payroll.MaterializeParallelism <= 0 {
		return fmt.Errorf("PAYROLL_MATERIALIZE_PARALLELISM must be positive")
	}
	return nil
}

// DatabaseURL builds the PostgreSQL connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port,
		c.Database.Name, c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
