package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"filerename/internal/config"
	"filerename/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check external binaries used for tag editing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := []deps.Status{
				deps.CheckFFmpeg(cfg.FFmpegBinary(), cfg.Tagging.Writer == config.TagWriterFFmpeg),
			}
			out := cmd.OutOrStdout()
			writeLines(out, dependencyLines(statuses, shouldColorize(out)))
			return nil
		},
	}
}

func dependencyLines(statuses []deps.Status, colorize bool) []string {
	missing := deps.Missing(statuses)
	lines := make([]string, 0, len(statuses)+2)

	summaryKind, summaryMessage := statusOK, "All required binaries available"
	if len(missing) > 0 {
		summaryKind, summaryMessage = statusError, fmt.Sprintf("%d required binary(ies) missing", len(missing))
	}
	lines = append(lines, renderStatusLine("Summary", summaryKind, summaryMessage, colorize))

	for _, status := range statuses {
		switch {
		case status.Available:
			lines = append(lines, renderStatusLine(status.Name, statusOK, fmt.Sprintf("Ready (command: %s)", status.Command), colorize))
		case status.Optional:
			lines = append(lines, renderStatusLine(status.Name, statusWarn, status.Detail+" (only needed for --edit-meta-tags)", colorize))
		default:
			lines = append(lines, renderStatusLine(status.Name, statusError, status.Detail, colorize))
		}
	}

	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, status := range missing {
			names = append(names, status.Name)
		}
		lines = append(lines, statusIndent+"Missing dependencies: "+strings.Join(names, ", "))
	}
	return lines
}

func writeLines(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
