package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	SMTP       SMTPConfig
	Tenant     TenantConfig
	Attendance AttendanceConfig
	Accrual    AccrualConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds token verification configuration. Tokens are issued upstream;
// this service only verifies them and consumes the claims.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// TenantConfig carries the distinguished master tenant id. The master tenant
// bypasses tenant scoping on reads only.
type TenantConfig struct {
	MasterTenantID string
}

// AttendanceConfig holds tenant-default attendance policy values. Per-tenant
// overrides live in tenant settings; these are the fallbacks.
type AttendanceConfig struct {
	GeofenceRadiusMeters float64
	LateGraceMinutes     int
}

// AccrualConfig holds the per-period leave credit increments.
type AccrualConfig struct {
	EarnedLeave float64
	SickLeave   float64
	CasualLeave float64
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "workforce"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", ""),
		FromName: getEnv("SMTP_FROM_NAME", "Workforce"),
	}

	config.Tenant = TenantConfig{
		MasterTenantID: getEnv("MASTER_TENANT_ID", ""),
	}

	radius, err := strconv.ParseFloat(getEnv("GEOFENCE_RADIUS_METERS", "100"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_RADIUS_METERS: %w", err)
	}
	grace, err := strconv.Atoi(getEnv("LATE_GRACE_MINUTES", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid LATE_GRACE_MINUTES: %w", err)
	}
	config.Attendance = AttendanceConfig{
		GeofenceRadiusMeters: radius,
		LateGraceMinutes:     grace,
	}

	earned, err := strconv.ParseFloat(getEnv("ACCRUAL_EARNED_LEAVE", "1.5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ACCRUAL_EARNED_LEAVE: %w", err)
	}
	sick, err := strconv.ParseFloat(getEnv("ACCRUAL_SICK_LEAVE", "0.5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ACCRUAL_SICK_LEAVE: %w", err)
	}
	casual, err := strconv.ParseFloat(getEnv("ACCRUAL_CASUAL_LEAVE", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ACCRUAL_CASUAL_LEAVE: %w", err)
	}
	config.Accrual = AccrualConfig{
		EarnedLeave: earned,
		SickLeave:   sick,
		CasualLeave: casual,
	}

	// Validate required fields
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
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
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
