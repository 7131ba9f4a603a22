package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hrpay/payroll-backend-go/internal/pkg/validator"
	"github.com/joho/godotenv"
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
	Port          int
	Env           string
	LogLevel      string
	MigrationsDir string
}

// PayrollConfig holds payroll policy configuration
type PayrollConfig struct {
	// WeekendPolicy selects which two days count as weekend when deriving
	// working days: "sat_sun" or "fri_sat".
	WeekendPolicy string
	// StandardWeeklyHours is the full-time reference used for part-time
	// proration.
	StandardWeeklyHours int
	// StandardMonthlyHours is the fallback divisor for premium-hour pay
	// when an employee type carries no weekly hours.
	StandardMonthlyHours int
}

func Load() (*Config, error) {
	// .env is optional; real deployments configure the environment directly.
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
		Name:     getEnv("DB_NAME", "payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:          appPort,
		Env:           getEnv("APP_ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
	}

	weeklyHours, err := strconv.Atoi(getEnv("PAYROLL_STANDARD_WEEKLY_HOURS", "40"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_STANDARD_WEEKLY_HOURS: %w", err)
	}
	monthlyHours, err := strconv.Atoi(getEnv("PAYROLL_STANDARD_MONTHLY_HOURS", "160"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_STANDARD_MONTHLY_HOURS: %w", err)
	}

	config.Payroll = PayrollConfig{
		WeekendPolicy:        getEnv("PAYROLL_WEEKEND_POLICY", "sat_sun"),
		StandardWeeklyHours:  weeklyHours,
		StandardMonthlyHours: monthlyHours,
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
	if !validator.IsInSlice(c.Payroll.WeekendPolicy, []string{"sat_sun", "fri_sat"}) {
		return fmt.Errorf("PAYROLL_WEEKEND_POLICY must be 'sat_sun' or 'fri_sat'")
	}
	if c.Payroll.StandardWeeklyHours <= 0 {
		return fmt.Errorf("PAYROLL_STANDARD_WEEKLY_HOURS must be positive")
	}
	if c.Payroll.StandardMonthlyHours <= 0 {
		return fmt.Errorf("PAYROLL_STANDARD_MONTHLY_HOURS must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
