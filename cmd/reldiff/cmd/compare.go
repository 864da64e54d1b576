// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oneconcern/reldiff/pkg/core"
	"github.com/oneconcern/reldiff/pkg/dlogger"
	"github.com/oneconcern/reldiff/pkg/model"
	"github.com/oneconcern/reldiff/pkg/octopus"
	"github.com/oneconcern/reldiff/pkg/report"
	"github.com/oneconcern/reldiff/pkg/workspace"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two releases of a project",
	Long: `Compare two releases of a project and report the differences.

With --old-release and --new-release, those two releases are compared;
otherwise the two most recent releases of the project are used.

Packages sourced from the built-in feed are downloaded and extracted so
their content can be compared file by file. Packages from external feeds
are reported as changed without a content diff.
`,
	Run: func(cmd *cobra.Command, args []string) {
		if reldiffFlags.output.NoColor {
			color.NoColor = true
		}
		for _, required := range []struct{ flag, value string }{
			{"octopus-url", reldiffFlags.octopus.URL},
			{"octopus-api-key", reldiffFlags.octopus.APIKey},
			{"octopus-space", reldiffFlags.octopus.Space},
			{"octopus-project", reldiffFlags.octopus.Project},
		} {
			if required.value == "" {
				wrapFatalln(fmt.Sprintf("missing required flag or config value %q", required.flag), nil)
				return
			}
		}
		logger, err := dlogger.GetLogger(reldiffFlags.root.logLevel)
		if err != nil {
			wrapFatalln("failed to set log level", err)
			return
		}
		if err := runCompare(context.Background(), cmd.OutOrStdout(), &reldiffFlags, logger); err != nil {
			wrapFatalln("release comparison failed", err)
			return
		}
	},
}

// runCompare performs the whole comparison. It owns the workspace lifetime:
// temporary archives and extracted trees are removed on every return path.
func runCompare(ctx context.Context, w io.Writer, flags *flagsT, logger *zap.Logger) error {
	client := octopus.New(flags.octopus.URL, flags.octopus.APIKey, octopus.WithLogger(logger))

	spaceID, err := client.SpaceID(ctx, flags.octopus.Space)
	if err != nil {
		return err
	}
	projectID, err := client.ProjectID(ctx, spaceID, flags.octopus.Project)
	if err != nil {
		return err
	}
	pair, err := client.ReleasePair(ctx, spaceID, projectID, flags.octopus.OldRelease, flags.octopus.NewRelease)
	if err != nil {
		return err
	}
	feedID, err := client.BuiltInFeedID(ctx, spaceID)
	if err != nil {
		return err
	}
	source, err := client.Snapshot(ctx, spaceID, feedID, pair.Source)
	if err != nil {
		return err
	}
	destination, err := client.Snapshot(ctx, spaceID, feedID, pair.Destination)
	if err != nil {
		return err
	}

	ws, err := workspace.New(workspace.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := ws.Close(); closeErr != nil {
			logger.Warn("failed to clean up workspace", zap.Error(closeErr))
		}
	}()

	client.DownloadAll(ctx, spaceID, &source, &destination, ws.Dir())
	extractAll(ws, logger, &source, &destination)

	diff, err := core.Diff(source, destination, core.Logger(logger))
	if err != nil {
		return err
	}

	report.Text(w, diff)
	if flags.output.Variables {
		report.OutputVariables(w, diff)
	}
	return nil
}

// extractAll unzips every downloaded archive and attaches the extraction
// paths. Extraction failures degrade the affected pair to content
// unavailable rather than failing the run.
func extractAll(ws *workspace.Workspace, logger *zap.Logger, snapshots ...*model.Snapshot) {
	for _, snap := range snapshots {
		for i := range snap.Packages {
			pkg := &snap.Packages[i]
			if pkg.ArchivePath == "" {
				continue
			}
			dir, err := ws.Extract(pkg.ArchivePath)
			if err != nil {
				logger.Warn("package extraction failed",
					zap.String("package", pkg.String()),
					zap.Error(err),
				)
				continue
			}
			pkg.ExtractedPath = dir
		}
	}
}

func init() {
	rootCmd.AddCommand(compareCmd)

	addServerFlag(compareCmd)
	addAPIKeyFlag(compareCmd)
	addSpaceFlag(compareCmd)
	addProjectFlag(compareCmd)
	addOldReleaseFlag(compareCmd)
	addNewReleaseFlag(compareCmd)
	addOutputVariablesFlag(compareCmd)
	addNoColorFlag(compareCmd)
}
