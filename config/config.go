// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

type Config struct {
	EngineConfig EngineConfig
	ChainConfigs []map[string]interface{}
}

type EngineConfig struct {
	Id                        string
	Env                       string
	LogLevel                  string
	HealthPort                uint16
	ApiAddr                   string
	OpenTelemetryCollectorURL string

	AggregatorConfig    AggregatorConfig
	CoinmarketcapConfig CoinmarketcapConfig
}

// AggregatorConfig configures the upstream routing aggregator. FeeBps is
// skimmed into FeeReceiver on every quote that has a native leg.
type AggregatorConfig struct {
	Url         string
	ClientID    string
	FeeBps      uint32
	FeeReceiver common.Address
}

type CoinmarketcapConfig struct {
	Url    string
	ApiKey string
}

type RawConfig struct {
	EngineConfig RawEngineConfig          `mapstructure:"engine" json:"engine"`
	ChainConfigs []map[string]interface{} `mapstructure:"chains" json:"chains"`
}

type RawEngineConfig struct {
	Id                        string `mapstructure:"id" json:"id"`
	Env                       string `mapstructure:"env" json:"env"`
	LogLevel                  string `mapstructure:"logLevel" json:"logLevel" default:"info"`
	HealthPort                uint16 `mapstructure:"healthPort" json:"healthPort" default:"9001"`
	ApiAddr                   string `mapstructure:"apiAddr" json:"apiAddr" default:":8080"`
	OpenTelemetryCollectorURL string `mapstructure:"openTelemetryCollectorURL" json:"openTelemetryCollectorURL"`

	Aggregator    RawAggregatorConfig    `mapstructure:"aggregator" json:"aggregator"`
	Coinmarketcap RawCoinmarketcapConfig `mapstructure:"coinmarketcap" json:"coinmarketcap"`
}

type RawAggregatorConfig struct {
	Url         string `mapstructure:"url" json:"url" default:"https://aggregator-api.kyberswap.com"`
	ClientID    string `mapstructure:"clientID" json:"clientID"`
	FeeBps      uint32 `mapstructure:"feeBps" json:"feeBps"`
	FeeReceiver string `mapstructure:"feeReceiver" json:"feeReceiver"`
}

type RawCoinmarketcapConfig struct {
	Url    string `mapstructure:"url" json:"url" default:"https://pro-api.coinmarketcap.com"`
	ApiKey string `mapstructure:"apiKey" json:"apiKey"`
}

func (c *RawConfig) Validate() error {
	if c.EngineConfig.Aggregator.FeeBps != 0 && c.EngineConfig.Aggregator.FeeReceiver == "" {
		return fmt.Errorf("required field engine.aggregator.feeReceiver empty with feeBps set")
	}
	if len(c.ChainConfigs) == 0 {
		return fmt.Errorf("required field chains empty")
	}
	for _, chain := range c.ChainConfigs {
		if chain["type"] == "" || chain["type"] == nil {
			return fmt.Errorf("chain 'type' must be provided for every configured chain")
		}
	}
	return nil
}

// GetConfigFromFile reads config from the file at path and overrides the
// base config with the values it finds.
func GetConfigFromFile(path string, config *Config) (*Config, error) {
	rawConfig := RawConfig{}

	viper.SetConfigFile(path)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return config, err
	}
	if err := viper.Unmarshal(&rawConfig); err != nil {
		return config, err
	}

	return processRawConfig(rawConfig, config)
}

// GetConfigFromENV reads config from FORGE prefixed environment variables
// and overrides the base config with the values it finds.
//
// Nested fields are set with underscore separators, e.g. FORGE_ENGINE_LOGLEVEL.
func GetConfigFromENV(config *Config) (*Config, error) {
	rawConfig := RawConfig{}

	viper.SetEnvPrefix("FORGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.Unmarshal(&rawConfig); err != nil {
		return config, err
	}

	return processRawConfig(rawConfig, config)
}

func processRawConfig(rawConfig RawConfig, config *Config) (*Config, error) {
	if err := defaults.Set(&rawConfig); err != nil {
		return config, err
	}
	if err := rawConfig.Validate(); err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	config.EngineConfig = EngineConfig{
		Id:                        rawConfig.EngineConfig.Id,
		Env:                       rawConfig.EngineConfig.Env,
		LogLevel:                  rawConfig.EngineConfig.LogLevel,
		HealthPort:                rawConfig.EngineConfig.HealthPort,
		ApiAddr:                   rawConfig.EngineConfig.ApiAddr,
		OpenTelemetryCollectorURL: rawConfig.EngineConfig.OpenTelemetryCollectorURL,

		AggregatorConfig: AggregatorConfig{
			Url:         rawConfig.EngineConfig.Aggregator.Url,
			ClientID:    rawConfig.EngineConfig.Aggregator.ClientID,
			FeeBps:      rawConfig.EngineConfig.Aggregator.FeeBps,
			FeeReceiver: common.HexToAddress(rawConfig.EngineConfig.Aggregator.FeeReceiver),
		},
		CoinmarketcapConfig: CoinmarketcapConfig{
			Url:    rawConfig.EngineConfig.Coinmarketcap.Url,
			ApiKey: rawConfig.EngineConfig.Coinmarketcap.ApiKey,
		},
	}
	config.ChainConfigs = rawConfig.ChainConfigs
	return config, nil
}
