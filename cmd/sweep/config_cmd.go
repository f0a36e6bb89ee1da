package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"

	"github.com/sweeplab/sweep/internal/output"
	"github.com/sweeplab/sweep/pkg/config"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Subcommands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Validate a configuration file against the schema",
				ArgsUsage: "[file]",
				Action:    runConfigValidate,
			},
			{
				Name:  "show",
				Usage: "Show the effective configuration",
				Description: `Shows the merged configuration from defaults and config file.

Examples:
  sweep config show                 # Show effective config
  sweep config show -c sweep.toml   # Show config from specific file`,
				Action: runConfigShow,
			},
		},
	}
}

func runConfigValidate(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		path = c.String("config")
	}
	if path == "" {
		return fmt.Errorf("no config file specified (pass a path or use --config)")
	}

	if err := config.Validate(path); err != nil {
		color.Red("Configuration validation failed:")
		fmt.Printf("  - %s\n", err)
		return fmt.Errorf("invalid configuration")
	}

	color.Green("Configuration is valid: %s", path)
	return nil
}

func runConfigShow(c *cli.Context) error {
	cfg, err := loadConfig(c, getPath(c))
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(cfg)
	}

	content, err := toml.Marshal(*cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = formatter.Writer().Write(content)
	return err
}
