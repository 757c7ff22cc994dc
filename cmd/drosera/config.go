// Config loading for the drosera CLI.
package main

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config keys. Each can also be set through a DROSERA_* environment
// variable (DROSERA_DATABASE, DROSERA_LOG_LEVEL, and so on).
const (
	cfgKeyDatabase  = "database"
	cfgKeyCount     = "count"
	cfgKeyLogLevel  = "log_level"
	cfgKeySeparator = "separator"
	cfgKeyMaxLen    = "max_len"
)

// loadConfig reads the drosera config using Viper. Flags override
// environment variables, which override the config file, which overrides
// the defaults. A missing config file is not an error; the defaults apply.
func loadConfig(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyDatabase, "drosera.db")
	v.SetDefault(cfgKeyCount, 1)
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetDefault(cfgKeySeparator, " ")
	v.SetDefault(cfgKeyMaxLen, 0)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("drosera")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("DROSERA")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}
