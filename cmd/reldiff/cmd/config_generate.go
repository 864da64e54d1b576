// Copyright © 2018 One Concern

package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var configGen = &cobra.Command{
	Use:   "create",
	Short: "Create a config",
	Long:  "Create a config to use for reldiff. Config file will be placed in $HOME/.reldiff/reldiff.yaml",
	Run: func(cmd *cobra.Command, args []string) {
		home, err := os.UserHomeDir()
		if err != nil {
			wrapFatalln("could not get home directory for user", err)
			return
		}
		config := CLIConfig{
			URL:     reldiffFlags.octopus.URL,
			APIKey:  reldiffFlags.octopus.APIKey,
			Space:   reldiffFlags.octopus.Space,
			Project: reldiffFlags.octopus.Project,
		}
		o, e := yaml.Marshal(config)
		if e != nil {
			wrapFatalln("serialize config to yaml", e)
			return
		}
		_ = os.Mkdir(filepath.Join(home, ".reldiff"), 0777)
		err = os.WriteFile(filepath.Join(home, ".reldiff", "reldiff.yaml"), o, 0666)
		if err != nil {
			wrapFatalln("write config file", err)
			return
		}
	},
}

func init() {
	addServerFlag(configGen)
	addAPIKeyFlag(configGen)
	addSpaceFlag(configGen)
	addProjectFlag(configGen)

	configCmd.AddCommand(configGen)
}
