package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"filerename/internal/config"
	"filerename/internal/deps"
	"filerename/internal/faults"
	"filerename/internal/logging"
	"filerename/internal/workflow"
)

type runFlags struct {
	force     bool
	makeM3U   bool
	editTags  bool
	logLevel  string
	logFormat string
	verbose   bool
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var flags runFlags

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "filerename [flags] <target>",
		Short: "Normalize media library file and directory names",
		Long: "Rename a directory tree or a single file with the configured substitution rules,\n" +
			"keeping playlists (and optionally media tags) in sync.\n\n" +
			"Runs as a dry run unless --force is given. A target whose name matches a\n" +
			"subcommand must be written with a path prefix, for example ./config.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return faults.Wrap(faults.ErrUsage, "", "", fmt.Sprintf("expected exactly one target path, got %d", len(args)), nil)
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runRename(cmd, cfg, args[0], flags)
		},
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return faults.Wrap(faults.ErrUsage, "", "", "", err)
	})

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (TOML, or the legacy JSON rule document)")

	rootCmd.Flags().BoolVar(&flags.force, "force", false, "Apply the changes instead of reporting them")
	rootCmd.Flags().BoolVar(&flags.makeM3U, "make-m3u", false, "Generate a playlist for directories with audio files but no playlist")
	rootCmd.Flags().BoolVar(&flags.editTags, "edit-meta-tags", false, "Rewrite title and album tags from file names")
	rootCmd.Flags().BoolVar(&flags.editTags, "edit-meta-tag", false, "Alias for --edit-meta-tags")
	_ = rootCmd.Flags().MarkHidden("edit-meta-tag")
	rootCmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Override the log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&flags.logFormat, "log-format", "", "Override the log format (console, json)")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "List every change in the summary, including playlist entries")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDepsCommand(ctx))

	return rootCmd
}

func runRename(cmd *cobra.Command, cfg *config.Config, target string, flags runFlags) error {
	runCfg := *cfg
	if level := strings.TrimSpace(flags.logLevel); level != "" {
		runCfg.Logging.Level = strings.ToLower(level)
	}
	if format := strings.TrimSpace(flags.logFormat); format != "" {
		runCfg.Logging.Format = strings.ToLower(format)
	}
	if err := runCfg.Validate(); err != nil {
		return faults.Wrap(faults.ErrUsage, "", "", "", err)
	}

	logger, err := logging.NewFromConfig(&runCfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	dryRun := !flags.force
	if flags.editTags && !dryRun {
		status := deps.CheckFFmpeg(runCfg.FFmpegBinary(), runCfg.Tagging.Writer == config.TagWriterFFmpeg)
		if !status.Available {
			logger.Warn("tag writer binary unavailable",
				logging.String("command", status.Command),
				logging.String("detail", status.Detail),
			)
		}
	}

	runner := workflow.NewRunner(&runCfg, logger)
	summary, runErr := runner.Run(cmd.Context(), workflow.Request{
		Target:            target,
		DryRun:            dryRun,
		GeneratePlaylists: flags.makeM3U,
		EditTags:          flags.editTags,
	})

	out := cmd.OutOrStdout()
	if summary.InitialRoot != "" {
		fmt.Fprint(out, renderSummary(summary, summaryOptions{
			colorize: shouldColorize(out),
			verbose:  flags.verbose,
			failed:   runErr != nil,
		}))
	}
	return runErr
}
