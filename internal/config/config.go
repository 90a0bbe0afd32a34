package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

type AWSConfig struct {
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"accessKeyID"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
	DynamoEndpoint  string `mapstructure:"dynamoEndpoint"`
	S3Endpoint      string `mapstructure:"s3Endpoint"`
}

// TablesConfig names one DynamoDB table per stored aggregate.
type TablesConfig struct {
	ServiceRequests     string `mapstructure:"serviceRequests"`
	PaymentSections     string `mapstructure:"paymentSections"`
	Contracts           string `mapstructure:"contracts"`
	ContractHistory     string `mapstructure:"contractHistory"`
	PrefacturaDelivery  string `mapstructure:"prefacturaDelivery"`
	Vehicles            string `mapstructure:"vehicles"`
	Drivers             string `mapstructure:"drivers"`
	Clients             string `mapstructure:"clients"`
	Locations           string `mapstructure:"locations"`
	Sequences           string `mapstructure:"sequences"`
	RequestsByDateIndex string `mapstructure:"requestsByDateIndex"`
	VehiclesByCompany   string `mapstructure:"vehiclesByCompany"`
	HistoryByContract   string `mapstructure:"historyByContract"`
	DeliveryByRequest   string `mapstructure:"deliveryByRequest"`
}

type PostgresConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"maxConns"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type S3Config struct {
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
}

type PaymentsConfig struct {
	AccessToken string `mapstructure:"accessToken"`
	Mock        bool   `mapstructure:"mock"`
}

type SequenceConfig struct {
	Prefix string `mapstructure:"prefix"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	AWS      AWSConfig      `mapstructure:"aws"`
	Tables   TablesConfig   `mapstructure:"tables"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	S3       S3Config       `mapstructure:"s3"`
	Payments PaymentsConfig `mapstructure:"payments"`
	Sequence SequenceConfig `mapstructure:"sequence"`
	Log      LogConfig      `mapstructure:"log"`
}

var ErrMissingJWTSecret = errors.New("missing JWT_SECRET")

// LoadConfig reads config.yaml from path when present and overrides it with
// environment variables.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Server.AllowedOrigins = splitList(strings.Join(cfg.Server.AllowedOrigins, ","))
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return Config{}, ErrMissingJWTSecret
	}
	return cfg, nil
}

var envBindings = map[string]string{
	"server.port":               "SERVER_PORT",
	"server.allowedOrigins":     "CORS_ALLOWED_ORIGINS",
	"aws.region":                "AWS_REGION",
	"aws.accessKeyID":           "AWS_ACCESS_KEY_ID",
	"aws.secretAccessKey":       "AWS_SECRET_ACCESS_KEY",
	"aws.dynamoEndpoint":        "DYNAMODB_ENDPOINT",
	"aws.s3Endpoint":            "S3_ENDPOINT",
	"tables.serviceRequests":    "SERVICE_REQUESTS_TABLE",
	"tables.paymentSections":    "PAYMENT_SECTIONS_TABLE",
	"tables.contracts":          "CONTRACTS_TABLE",
	"tables.contractHistory":    "CONTRACT_HISTORY_TABLE",
	"tables.prefacturaDelivery": "PREFACTURA_DELIVERY_TABLE",
	"tables.vehicles":           "VEHICLES_TABLE",
	"tables.drivers":            "DRIVERS_TABLE",
	"tables.clients":            "CLIENTS_TABLE",
	"tables.locations":          "LOCATIONS_TABLE",
	"tables.sequences":          "SEQUENCES_TABLE",
	"postgres.url":              "EXPENSES_DATABASE_URL",
	"postgres.maxConns":         "EXPENSES_DATABASE_MAX_CONNS",
	"jwt.secret":                "JWT_SECRET",
	"s3.bucket":                 "S3_BUCKET",
	"s3.prefix":                 "S3_PREFIX",
	"payments.accessToken":      "MERCADOPAGO_ACCESS_TOKEN",
	"payments.mock":             "PAYMENT_GATEWAY_MOCK",
	"sequence.prefix":           "SEQUENCE_PREFIX",
	"log.level":                 "LOG_LEVEL",
	"log.development":           "LOG_DEVELOPMENT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowedOrigins", []string{"*"})
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.accessKeyID", "local")
	v.SetDefault("aws.secretAccessKey", "local")
	v.SetDefault("tables.serviceRequests", "service_requests")
	v.SetDefault("tables.paymentSections", "payment_sections")
	v.SetDefault("tables.contracts", "contracts")
	v.SetDefault("tables.contractHistory", "contract_history")
	v.SetDefault("tables.prefacturaDelivery", "prefactura_deliveries")
	v.SetDefault("tables.vehicles", "vehicles")
	v.SetDefault("tables.drivers", "drivers")
	v.SetDefault("tables.clients", "clients")
	v.SetDefault("tables.locations", "locations")
	v.SetDefault("tables.sequences", "sequences")
	v.SetDefault("tables.requestsByDateIndex", "company_id-scheduled_date-index")
	v.SetDefault("tables.vehiclesByCompany", "company_id-index")
	v.SetDefault("tables.historyByContract", "contract_id-created_at-index")
	v.SetDefault("tables.deliveryByRequest", "request_id-created_at-index")
	v.SetDefault("postgres.maxConns", 5)
	v.SetDefault("s3.prefix", "prefacturas/")
	v.SetDefault("sequence.prefix", "HE")
	v.SetDefault("log.level", "info")
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
