// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reldiff",
	Short: "Reldiff inventories the changes between two releases of a project",
	Long: `Reldiff compares two releases of a deployment pipeline project and reports
every difference that matters when deciding whether a release is safe to
promote: packages added, removed or changed in content, variables added,
removed or changed in value or scope, and changes to the deployment steps.

The report is printed as plain text and can additionally be emitted as
output variables for consumption by downstream pipeline automation.
`,
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)
	addLogLevelFlag(rootCmd)
	addConfigFlag(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if reldiffFlags.root.config != "" {
		viper.SetConfigFile(reldiffFlags.root.config)
	} else if os.Getenv("RELDIFF_CONFIG") != "" {
		viper.SetConfigFile(os.Getenv("RELDIFF_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.reldiff")
		viper.AddConfigPath("/etc/reldiff")
		viper.SetConfigName("reldiff")
	}

	viper.SetEnvPrefix("reldiff")
	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		infoLogger.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
	config.setCompareParams(&reldiffFlags)
}
