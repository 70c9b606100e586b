package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/Netflix/go-env"
	"github.com/ethereum/go-ethereum/common"
)

// Environment variables with defaults
type ServerEnvironment struct {

	// http server settings
	Environment           string        `env:"ENVIRONMENT,default=dev"`
	Host                  string        `env:"HOST,default=0.0.0.0"`
	Port                  int           `env:"PORT,default=8080"`
	LogLevel              string        `env:"LOG_LEVEL,default=debug"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT,default=10s"`
	ReadTimeout           time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout          time.Duration `env:"WRITE_TIMEOUT,default=7m"`
	IdleTimeout           time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	AllowedOrigins        []string      `env:"ALLOWED_ORIGINS,separator=|"`
	RateLimitRPS          int32         `env:"RATE_LIMIT_RPS,default=100"`
	RateLimitBurst        int32         `env:"RATE_LIMIT_BURST,default=200"`
	MaxRequestBodyBytes   int64         `env:"MAX_REQUEST_BODY_BYTES,default=65536"`

	// ledger settings
	ABIPath             string        `env:"ABI_PATH"`
	ChainID             int64         `env:"CHAIN_ID,default=0"`
	GasLimit            uint64        `env:"GAS_LIMIT,default=0"`
	LedgerDialTimeout   time.Duration `env:"LEDGER_DIAL_TIMEOUT,default=10s"`
	LedgerCallTimeout   time.Duration `env:"LEDGER_CALL_TIMEOUT,default=30s"`
	SubmitTimeout       time.Duration `env:"SUBMIT_TIMEOUT,default=60s"`
	ConfirmationTimeout time.Duration `env:"CONFIRMATION_TIMEOUT,default=5m"`

	// Required ledger configuration - must be set by environment variables
	RPCURL          string `env:"RPC_URL,required=true"`
	PrivateKey      string `env:"PRIVATE_KEY,required=true"`
	ContractAddress string `env:"CONTRACT_ADDRESS,required=true"`
}

// ClientEnvironment configures the certctl command line client
type ClientEnvironment struct {
	Environment   string        `env:"ENVIRONMENT,default=dev"`
	LogLevel      string        `env:"LOG_LEVEL,default=warn"`
	GatewayURL    string        `env:"CERTGW_URL,default=http://localhost:8080"`
	ClientTimeout time.Duration `env:"CLIENT_TIMEOUT,default=10m"`
}

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"prod":    true,
	"staging": true,
}

// ShowErrorDetails reports whether raw error details may be included in responses.
func (cfg *ServerEnvironment) ShowErrorDetails() bool {
	return cfg.Environment == "dev" || cfg.Environment == "test"
}

// NewServerConfig loads environment variables and returns a ServerEnvironment struct that contains the values
func NewServerConfig() (*ServerEnvironment, error) {
	var cfg ServerEnvironment

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil

}

// NewClientConfig loads the certctl settings from the environment
func NewClientConfig() (*ClientEnvironment, error) {
	var cfg ClientEnvironment

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if !validEnvs[cfg.Environment] {
		return nil, fmt.Errorf("invalid ENVIRONMENT: %s", cfg.Environment)
	}
	if _, err := url.ParseRequestURI(cfg.GatewayURL); err != nil {
		return nil, fmt.Errorf("invalid CERTGW_URL: %w", err)
	}
	if cfg.ClientTimeout <= 0 {
		return nil, fmt.Errorf("CLIENT_TIMEOUT must be greater than 0")
	}
	return &cfg, nil
}

// validateConfig checks for required env variables
func validateConfig(cfg *ServerEnvironment) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid ENVIRONMENT: %s", cfg.Environment)
	}
	if cfg.MaxRequestBodyBytes < 1 {
		return fmt.Errorf("MAX_REQUEST_BODY_BYTES must be at least 1")
	}
	if cfg.RateLimitRPS < 0 || cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be 0 or greater")
	}

	// Validate ledger configuration
	if cfg.RPCURL == "" || cfg.PrivateKey == "" {
		return fmt.Errorf("RPC_URL and PRIVATE_KEY must not be empty")
	}
	if _, err := url.Parse(cfg.RPCURL); err != nil {
		return fmt.Errorf("invalid RPC_URL: %w", err)
	}
	if !common.IsHexAddress(cfg.ContractAddress) {
		return fmt.Errorf("CONTRACT_ADDRESS must be a hex encoded address, got %q", cfg.ContractAddress)
	}
	if cfg.ChainID < 0 {
		return fmt.Errorf("CHAIN_ID must be 0 or greater")
	}
	if cfg.LedgerDialTimeout <= 0 || cfg.LedgerCallTimeout <= 0 {
		return fmt.Errorf("LEDGER_DIAL_TIMEOUT and LEDGER_CALL_TIMEOUT must be greater than 0")
	}
	if cfg.SubmitTimeout <= 0 || cfg.ConfirmationTimeout <= 0 {
		return fmt.Errorf("SUBMIT_TIMEOUT and CONFIRMATION_TIMEOUT must be greater than 0")
	}

	// a transaction request must be able to finish before the server stops writing the response
	if cfg.WriteTimeout <= cfg.SubmitTimeout+cfg.ConfirmationTimeout {
		return fmt.Errorf("WRITE_TIMEOUT (%s) must be greater than SUBMIT_TIMEOUT + CONFIRMATION_TIMEOUT (%s)",
			cfg.WriteTimeout, cfg.SubmitTimeout+cfg.ConfirmationTimeout)
	}

	return nil
}
