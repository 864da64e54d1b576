// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oneconcern/reldiff/pkg/dlogger"
)

type flagsT struct {
	octopus struct {
		URL        string
		APIKey     string
		Space      string
		Project    string
		OldRelease string
		NewRelease string
	}
	output struct {
		Variables bool
		NoColor   bool
	}
	root struct {
		logLevel string
		config   string
	}
}

var reldiffFlags flagsT

func addServerFlag(cmd *cobra.Command) string {
	const server = "octopus-url"
	cmd.Flags().StringVar(&reldiffFlags.octopus.URL, server, "", "The Octopus server URL")
	return server
}

func addAPIKeyFlag(cmd *cobra.Command) string {
	const apiKey = "octopus-api-key"
	cmd.Flags().StringVar(&reldiffFlags.octopus.APIKey, apiKey, "", "The Octopus API key")
	return apiKey
}

func addSpaceFlag(cmd *cobra.Command) string {
	const space = "octopus-space"
	cmd.Flags().StringVar(&reldiffFlags.octopus.Space, space, "", "The Octopus space")
	return space
}

func addProjectFlag(cmd *cobra.Command) string {
	const project = "octopus-project"
	cmd.Flags().StringVar(&reldiffFlags.octopus.Project, project, "", "The project whose releases are compared")
	return project
}

func addOldReleaseFlag(cmd *cobra.Command) string {
	const oldRelease = "old-release"
	cmd.Flags().StringVar(&reldiffFlags.octopus.OldRelease, oldRelease, "",
		"The previous release to compare, defaults to the second most recent release")
	return oldRelease
}

func addNewReleaseFlag(cmd *cobra.Command) string {
	const newRelease = "new-release"
	cmd.Flags().StringVar(&reldiffFlags.octopus.NewRelease, newRelease, "",
		"The new release to compare, defaults to the most recent release")
	return newRelease
}

func addOutputVariablesFlag(cmd *cobra.Command) string {
	const outputVariables = "output-variables"
	cmd.Flags().BoolVar(&reldiffFlags.output.Variables, outputVariables, false,
		"Additionally emit each reconciliation category as a pipeline output variable")
	return outputVariables
}

func addNoColorFlag(cmd *cobra.Command) string {
	const noColor = "no-color"
	cmd.Flags().BoolVar(&reldiffFlags.output.NoColor, noColor, false, "Disable colorized output")
	return noColor
}

func addLogLevelFlag(cmd *cobra.Command) string {
	const loglevel = "loglevel"
	cmd.PersistentFlags().StringVar(&reldiffFlags.root.logLevel, loglevel, dlogger.LogLevelInfo,
		"The logging level, one of: info, debug, none")
	return loglevel
}

func addConfigFlag(cmd *cobra.Command) string {
	const configFlag = "config"
	cmd.PersistentFlags().StringVar(&reldiffFlags.root.config, configFlag, "",
		"Path to the config file (default is ./reldiff.yaml, $HOME/.reldiff/reldiff.yaml, /etc/reldiff/reldiff.yaml)")
	return configFlag
}
