package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Currency describes how amounts in one currency are displayed and totalled
type Currency struct {
	Code     string `yaml:"code"`
	Symbol   string `yaml:"symbol"`
	Decimals int    `yaml:"decimals"`
}

// CurrenciesConfig holds the known currencies
type CurrenciesConfig struct {
	Default    string     `yaml:"default"`
	Currencies []Currency `yaml:"currencies"`

	byCode map[string]*Currency
}

// DefaultCurrencies returns the built-in currency table.
func DefaultCurrencies() *CurrenciesConfig {
	cfg := &CurrenciesConfig{
		Default: "EUR",
		Currencies: []Currency{
			{Code: "EUR", Symbol: "€", Decimals: 2},
			{Code: "USD", Symbol: "$", Decimals: 2},
			{Code: "GBP", Symbol: "£", Decimals: 2},
			{Code: "INR", Symbol: "₹", Decimals: 2},
			{Code: "JPY", Symbol: "¥", Decimals: 0},
		},
	}
	cfg.index()
	return cfg
}

// LoadCurrenciesConfig loads the currency table from a YAML file. An empty
// path yields the built-in table.
func LoadCurrenciesConfig(path string) (*CurrenciesConfig, error) {
	if path == "" {
		return DefaultCurrencies(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read currencies config file: %w", err)
	}

	var cfg CurrenciesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse currencies config: %w", err)
	}

	for i := range cfg.Currencies {
		cfg.Currencies[i].Code = strings.ToUpper(strings.TrimSpace(cfg.Currencies[i].Code))
	}
	cfg.Default = strings.ToUpper(strings.TrimSpace(cfg.Default))
	cfg.index()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *CurrenciesConfig) index() {
	c.byCode = make(map[string]*Currency, len(c.Currencies))
	for i := range c.Currencies {
		cur := &c.Currencies[i]
		c.byCode[cur.Code] = cur
	}
}

// Validate validates the currencies configuration
func (c *CurrenciesConfig) Validate() error {
	if len(c.Currencies) == 0 {
		return fmt.Errorf("at least one currency must be configured")
	}

	seen := make(map[string]bool)
	for _, cur := range c.Currencies {
		if cur.Code == "" {
			return fmt.Errorf("currency code is required")
		}
		if cur.Decimals < 0 || cur.Decimals > 8 {
			return fmt.Errorf("decimals must be between 0 and 8 for currency %s", cur.Code)
		}
		if seen[cur.Code] {
			return fmt.Errorf("duplicate currency %s", cur.Code)
		}
		seen[cur.Code] = true
	}

	if c.Default == "" {
		return fmt.Errorf("default currency is required")
	}
	if !seen[c.Default] {
		return fmt.Errorf("default currency %s is not configured", c.Default)
	}

	return nil
}

// Get returns the currency for a code, case-insensitively
func (c *CurrenciesConfig) Get(code string) (*Currency, bool) {
	cur, ok := c.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return cur, ok
}

// DecimalsFor returns the display precision for a code, 2 for unknown codes.
func (c *CurrenciesConfig) DecimalsFor(code string) int {
	if cur, ok := c.Get(code); ok {
		return cur.Decimals
	}
	return 2
}
