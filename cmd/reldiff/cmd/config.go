// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CLIConfig describes the CLI configuration. Field names are kept the same
// as the serialized names for viper to unmarshal them.
type CLIConfig struct {
	URL     string `json:"url" yaml:"url"`         // Octopus server URL
	APIKey  string `json:"apikey" yaml:"apikey"`   // Octopus API key
	Space   string `json:"space" yaml:"space"`     // Octopus space name
	Project string `json:"project" yaml:"project"` // Project whose releases are compared
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage a config",
	Long: `Commands to manage reldiff CLI config.

Configuration for reldiff is the common set of flags that are needed for most commands and do not change across runs,
analogous to "git config ...". `,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// setCompareParams fills flag values left unset from the config file, so
// flags always win over configuration.
func (c *CLIConfig) setCompareParams(flags *flagsT) {
	if flags.octopus.URL == "" {
		flags.octopus.URL = c.URL
	}
	if flags.octopus.APIKey == "" {
		flags.octopus.APIKey = c.APIKey
	}
	if flags.octopus.Space == "" {
		flags.octopus.Space = c.Space
	}
	if flags.octopus.Project == "" {
		flags.octopus.Project = c.Project
	}
}
