package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/uvpkg/internal/config"
	"gopkg.in/yaml.v3"
)

// createConfigCommand creates the config command group
func createConfigCommand(env *environment) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the programming directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configCmd.AddCommand(
		createConfigShowCommand(env),
		createConfigSetCommand(env),
		createConfigPathCommand(env),
	)

	return configCmd
}

func createConfigShowCommand(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmd.Flags().GetString("output")
			if err != nil {
				return fmt.Errorf("failed to get output flag: %w", err)
			}

			a, cleanup, err := env.newApp(cmd, false)
			if err != nil {
				return err
			}
			defer cleanup()

			cfg, err := a.LoadConfig(cmd.Context())
			if err != nil {
				return err //nolint:wrapcheck // already wrapped by app
			}

			data, err := renderConfig(cfg, format)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err //nolint:wrapcheck // stdout write
		},
	}

	cmd.Flags().StringP("output", "o", "json", "Output format (json, yaml)")
	return cmd
}

func renderConfig(cfg *config.Config, format string) ([]byte, error) {
	switch format {
	case "json":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		if err := enc.Encode(cfg); err != nil {
			return nil, fmt.Errorf("failed to encode config: %w", err)
		}
		return buf.Bytes(), nil
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to encode config: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported output format '%s': must be json or yaml", format)
	}
}

func createConfigSetCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "set <programming_dir>",
		Short: "Set the directory new packages are created in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := env.newApp(cmd, false)
			if err != nil {
				return err
			}
			defer cleanup()

			cfg, err := a.SetProgrammingDir(cmd.Context(), args[0])
			if err != nil {
				return err //nolint:wrapcheck // config errors are user-facing
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Programming directory set to '%s'\n", cfg.ProgrammingDir)
			return nil
		},
	}
}

func createConfigPathCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := env.storage.GetConfigPath()
			if err != nil {
				return err //nolint:wrapcheck // storage errors name the directory
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
