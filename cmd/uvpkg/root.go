package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/uvpkg/internal/constants"
)

// createNewRootCommand creates the main command that scaffolds a package
func createNewRootCommand(env *environment) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "uvpkg <package_name>",
		Short:         "Build a uv package starter with the specified name.",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return env.withLogger(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, err := cmd.Flags().GetBool("dry-run")
			if err != nil {
				return fmt.Errorf("failed to get dry-run flag: %w", err)
			}

			a, cleanup, err := env.newApp(cmd, !dryRun)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := a.Create(cmd.Context(), args[0], dryRun)
			if err != nil {
				return err //nolint:wrapcheck // app errors are user-facing
			}

			out := cmd.OutOrStdout()
			if result.DryRun {
				_, _ = fmt.Fprintf(out, "Would run: %s %s (in %s)\n",
					result.ToolPath, strings.Join(result.Args, " "), result.ProgrammingDir)
				return nil
			}

			_, _ = color.New(color.FgGreen).Fprintf(out, "Created package '%s' in '%s'\n",
				result.PackageName, result.ProgrammingDir)
			return nil
		},
	}

	rootCmd.Flags().Bool("dry-run", false, fmt.Sprintf("Show the %s command without running it", constants.ToolName))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		createConfigCommand(env),
		createHistoryCommand(env),
	)

	return rootCmd
}
