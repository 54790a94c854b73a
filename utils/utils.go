package utils

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"grocerflow-backend/models"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// GetConfig read the configuration from environment variables or config files
func GetConfig() (*models.Config, error) {
	config, err := Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return config, nil
}

// Load initializes and returns the application configuration using Viper
func Load() (*models.Config, error) {
	// Development convenience: pull a local .env into the process
	// before viper reads the environment.
	_ = godotenv.Load()

	v := viper.New()

	// Set configuration file details
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../")
	v.AddConfigPath("../../")

	// Set default values
	setDefaults(v)

	// Enable environment variable support
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		// Config file not found, continue with defaults and env vars
		fmt.Printf("Config file not found (%v), using defaults and environment variables\n", err)
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	// Handle nested JSON structure from config.json
	if v.IsSet("app") {
		// Flatten nested structure for easier mapping
		flattenNestedConfig(v)
	}

	var config models.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Parse JWT expiration if it's a string
	if v.IsSet("jwt.expires_in") {
		expiresStr := v.GetString("jwt.expires_in")
		if expiresStr != "" {
			if expires, err := time.ParseDuration(expiresStr); err != nil {
				return nil, fmt.Errorf("invalid JWT expires_in format: %w", err)
			} else {
				config.JWTExpiresIn = expires
			}
		}
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Application defaults
	v.SetDefault("app_name", "GrocerFlow Backend")
	v.SetDefault("app_version", "1.0.0")
	v.SetDefault("app_env", "development")
	v.SetDefault("app_host", "0.0.0.0")
	v.SetDefault("app_port", "8081")

	// JWT defaults
	v.SetDefault("jwt_secret", "your-super-secret-jwt-key-change-this-in-production")
	v.SetDefault("jwt_expires_in", 30*time.Minute)

	// AWS defaults
	v.SetDefault("aws_region", "ap-south-1")
	v.SetDefault("aws_access_key_id", "")
	v.SetDefault("aws_secret_access_key", "")
	v.SetDefault("dynamodb_endpoint", "")
	v.SetDefault("dynamodb_table_prefix", "GrocerFlow")

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// CORS defaults
	v.SetDefault("cors_origins", []string{"*"})

	// Base Path default
	v.SetDefault("basePath", "/api/v1")

	// Order pricing defaults
	v.SetDefault("delivery_fee", 25.0)
	v.SetDefault("cod_payment_fee", 10.0)
	v.SetDefault("bulk_order_weight_kg", 25.0)
	v.SetDefault("rider_commission_pct", 5.0)
	v.SetDefault("high_value_threshold", 10000.0)

	// Infrastructure worker defaults
	v.SetDefault("seed_demo_data", true)

	// Tables provisioned by the infrastructure worker
	v.SetDefault("tables", []string{
		"products", "batches", "suppliers", "customers", "riders",
		"orders", "order_items", "deliveries", "stock_levels",
		"purchase_orders", "cash_collections", "journeys", "discounts",
		"delivery_slots", "users", "audit_logs",
	})
}

// validate checks if all required configuration is provided
func validate(c *models.Config) error {

	if c.JWTSecret == "your-super-secret-jwt-key-change-this-in-production" && c.AppEnv == "production" {
		return fmt.Errorf("JWT_SECRET must be set in production environment")
	}

	// In production, we should have AWS credentials set
	if c.AppEnv == "production" && c.AWSAccessKeyID == "" {
		fmt.Println("No AWS credentials provided, assuming IAM role is used")
	}

	return nil
}

// nestedKeyAliases maps the sectioned keys of config.json to the flat
// keys the Config struct binds against.
var nestedKeyAliases = map[string]string{
	"app.name":                     "app_name",
	"app.version":                  "app_version",
	"app.env":                      "app_env",
	"app.host":                     "app_host",
	"app.port":                     "app_port",
	"jwt.secret":                   "jwt_secret",
	"aws.region":                   "aws_region",
	"aws.access_key_id":            "aws_access_key_id",
	"aws.secret_access_key":        "aws_secret_access_key",
	"aws.dynamodb_endpoint":        "dynamodb_endpoint",
	"aws.dynamodb_table_prefix":    "dynamodb_table_prefix",
	"logging.level":                "log_level",
	"logging.format":               "log_format",
	"cors.origins":                 "cors_origins",
	"pricing.delivery_fee":         "delivery_fee",
	"pricing.cod_payment_fee":      "cod_payment_fee",
	"pricing.bulk_order_weight_kg": "bulk_order_weight_kg",
	"pricing.rider_commission_pct": "rider_commission_pct",
	"pricing.high_value_threshold": "high_value_threshold",
	"worker.seed_demo_data":        "seed_demo_data",
}

// flattenNestedConfig copies the nested JSON structure onto flat keys
// for easier mapping
func flattenNestedConfig(v *viper.Viper) {
	for nested, flat := range nestedKeyAliases {
		if v.IsSet(nested) {
			v.Set(flat, v.Get(nested))
		}
	}
}

// PrintPrettyJSON takes any struct or map and prints it as pretty JSON
func PrintPrettyJSON(data interface{}) string {
	prettyJSON, err := json.MarshalIndent(data, "", "    ") // 4 spaces indent
	if err != nil {
		fmt.Println("Failed to generate JSON:", err)
		return ""
	}
	return string(prettyJSON)
}

// GenerateUUID returns a new UUID string
func GenerateUUID() string {
	return uuid.New().String()
}

// GenerateEntityID builds a dated business id such as
// ORD-20250114-3FA2C1. The suffix is the first six hex digits of a
// fresh UUID, uppercased.
func GenerateEntityID(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().UTC().Format("20060102"), suffix)
}

// GenerateRunID builds a timestamped run id such as RUN-20250114-153045
func GenerateRunID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, time.Now().UTC().Format("20060102-150405"))
}

// HashPassword hashes a plain text password using bcrypt.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword compares a hashed password with a plain text password.
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
