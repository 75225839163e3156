package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/AlexZinkM/asset-minter/internal/common"
	"github.com/AlexZinkM/asset-minter/internal/model"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: the keystore password is prompted at runtime and stored in memory - use GetKeystorePasswordBytes()
type Config struct {
	Port    string `envconfig:"PORT" default:"8080"`
	Network string `envconfig:"NETWORK" default:"testnet"`

	BetanetAlgodURL string `envconfig:"BETANET_ALGOD_URL" default:"https://betanet-api.algonode.cloud"`
	TestnetAlgodURL string `envconfig:"TESTNET_ALGOD_URL" default:"https://testnet-api.algonode.cloud"`
	MainnetAlgodURL string `envconfig:"MAINNET_ALGOD_URL" default:"https://mainnet-api.algonode.cloud"`
	AlgodToken      string `envconfig:"ALGOD_TOKEN"`

	KeystoreFilePath string `envconfig:"KEYSTORE_FILE_PATH"`
	RemoteSignerURL  string `envconfig:"REMOTE_SIGNER_URL"`
	RemoteSignerName string `envconfig:"REMOTE_SIGNER_NAME" default:"Remote Signer"`

	ConfirmationRounds         uint64 `envconfig:"CONFIRMATION_ROUNDS" default:"4"`
	ConfirmationTimeoutSeconds int    `envconfig:"CONFIRMATION_TIMEOUT_SECONDS" default:"60"`

	// MaxFeeAlgo caps the fee of a single transaction, in ALGO with at most 6 decimals (e.g. "0.01")
	MaxFeeAlgo string `envconfig:"MAX_FEE_ALGO" default:"0.01"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads and validates a configuration from environment variables without touching the global instance.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks values envconfig cannot express.
func (c *Config) Validate() error {
	if _, err := model.ParseNetwork(c.Network); err != nil {
		return fmt.Errorf("invalid NETWORK: %w", err)
	}
	if c.ConfirmationRounds == 0 {
		return errors.New("CONFIRMATION_ROUNDS must be greater than 0")
	}
	if c.ConfirmationTimeoutSeconds <= 0 {
		return errors.New("CONFIRMATION_TIMEOUT_SECONDS must be greater than 0")
	}
	maxFee, err := common.AlgoToMicroAlgos(c.MaxFeeAlgo)
	if err != nil {
		return fmt.Errorf("invalid MAX_FEE_ALGO: %w", err)
	}
	if maxFee == 0 {
		return errors.New("MAX_FEE_ALGO must be greater than 0")
	}
	if c.KeystoreFilePath == "" && c.RemoteSignerURL == "" {
		return errors.New("at least one of KEYSTORE_FILE_PATH or REMOTE_SIGNER_URL must be set")
	}
	return nil
}

// AlgodURL returns the algod endpoint configured for the network.
func (c *Config) AlgodURL(network model.Network) (string, error) {
	switch network {
	case model.NetworkBetanet:
		return c.BetanetAlgodURL, nil
	case model.NetworkTestnet:
		return c.TestnetAlgodURL, nil
	case model.NetworkMainnet:
		return c.MainnetAlgodURL, nil
	}
	return "", model.Errorf(model.KindInvalidNetwork, "no algod endpoint for network %q", network)
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetNetwork returns the initially selected network
func GetNetwork() model.Network {
	n, _ := model.ParseNetwork(Get().Network)
	return n
}

// GetKeystoreFilePath returns path to the keystore file from configuration
func GetKeystoreFilePath() string {
	return Get().KeystoreFilePath
}

// GetConfirmationTimeout returns the wall-clock bound of confirmation polling
func GetConfirmationTimeout() time.Duration {
	return time.Duration(Get().ConfirmationTimeoutSeconds) * time.Second
}

// GetMaxFee returns the transaction fee cap in microAlgos
func GetMaxFee() uint64 {
	fee, _ := common.AlgoToMicroAlgos(Get().MaxFeeAlgo)
	return fee
}

var passwordBytes []byte

// PromptForPassword prompts the user for the keystore password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, "Enter keystore password: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("password cannot be empty")
	}

	SetPassword(raw)
	clear(raw)
	return nil
}

// SetPassword stores a copy of password in memory.
func SetPassword(password []byte) {
	passwordBytes = make([]byte, len(password))
	copy(passwordBytes, password)
}

// GetKeystorePasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetKeystorePasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
