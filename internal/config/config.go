package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string
	Environment     string
	Database        DatabaseConfig
	ERP             ERPConfig
	CustomerService CustomerServiceConfig
	Catalog         CatalogConfig
	Redis           RedisConfig
	Orders          OrdersConfig
	LogLevel        string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ERPConfig struct {
	BaseURL  string
	Timeout  time.Duration
	HostName string
}

type CustomerServiceConfig struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

type CatalogConfig struct {
	BaseURL     string
	AccessToken string
	Timeout     time.Duration
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type OrdersConfig struct {
	DefaultPageSize int
	SessionCookie   string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "myorders"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		ERP: ERPConfig{
			BaseURL:  getEnvOrViper("ERP_BASE_URL", ""),
			Timeout:  getSeconds("ERP_TIMEOUT_SECONDS", 15),
			HostName: getEnvOrViper("ORDERS_HOST_NAME", "localhost"),
		},
		CustomerService: CustomerServiceConfig{
			BaseURL:  getEnvOrViper("CS_BASE_URL", ""),
			APIToken: getEnvOrViper("CS_API_TOKEN", ""),
			Timeout:  getSeconds("CS_TIMEOUT_SECONDS", 10),
		},
		Catalog: CatalogConfig{
			BaseURL:     getEnvOrViper("CATALOG_BASE_URL", ""),
			AccessToken: getEnvOrViper("CATALOG_ACCESS_TOKEN", ""),
			Timeout:     getSeconds("CATALOG_TIMEOUT_SECONDS", 10),
		},
		Redis: RedisConfig{
			Addr:      getEnvOrViper("REDIS_ADDR", "localhost:6379"),
			Password:  getEnvOrViper("REDIS_PASSWORD", ""),
			DB:        getInt("REDIS_DB", 0),
			KeyPrefix: getEnvOrViper("REDIS_SESSION_PREFIX", "session:"),
		},
		Orders: OrdersConfig{
			DefaultPageSize: getInt("ORDERS_DEFAULT_PAGE_SIZE", 10),
			SessionCookie:   getEnvOrViper("SESSION_COOKIE", "sessionid"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.ERP.BaseURL == "" {
		return nil, fmt.Errorf("ERP_BASE_URL is required")
	}
	if cfg.CustomerService.BaseURL == "" {
		return nil, fmt.Errorf("CS_BASE_URL is required")
	}
	if cfg.Catalog.BaseURL == "" {
		return nil, fmt.Errorf("CATALOG_BASE_URL is required")
	}
	if cfg.Orders.DefaultPageSize < 1 {
		return nil, fmt.Errorf("ORDERS_DEFAULT_PAGE_SIZE must be positive, got %d", cfg.Orders.DefaultPageSize)
	}

	return cfg, nil
}

// DSN builds the lib/pq connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnvOrViper(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return n
}

func getSeconds(key string, defaultValue int) time.Duration {
	return time.Duration(getInt(key, defaultValue)) * time.Second
}
