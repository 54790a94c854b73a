package models

import "time"

// Config holds all configuration for the application
type Config struct {
	// Application
	AppName    string `mapstructure:"app_name"`
	AppVersion string `mapstructure:"app_version"`
	AppEnv     string `mapstructure:"app_env"`
	AppHost    string `mapstructure:"app_host"`
	AppPort    string `mapstructure:"app_port"`

	// JWT
	JWTSecret    string        `mapstructure:"jwt_secret"`
	JWTExpiresIn time.Duration `mapstructure:"jwt_expires_in"`

	// AWS
	AWSRegion           string `mapstructure:"aws_region"`
	AWSAccessKeyID      string `mapstructure:"aws_access_key_id"`
	AWSSecretAccessKey  string `mapstructure:"aws_secret_access_key"`
	DynamoDBEndpoint    string `mapstructure:"dynamodb_endpoint"`
	DynamoDBTablePrefix string `mapstructure:"dynamodb_table_prefix"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// CORS
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Base Path
	BasePath string `mapstructure:"basePath"`

	// Order pricing
	DeliveryFee        float64 `mapstructure:"delivery_fee"`
	CODPaymentFee      float64 `mapstructure:"cod_payment_fee"`
	BulkOrderWeightKG  float64 `mapstructure:"bulk_order_weight_kg"`
	RiderCommissionPct float64 `mapstructure:"rider_commission_pct"`
	HighValueThreshold float64 `mapstructure:"high_value_threshold"`

	// Infrastructure worker
	SeedDemoData bool `mapstructure:"seed_demo_data"`

	Tables []string `mapstructure:"tables"`
}
