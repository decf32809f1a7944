package cmd

import (
	"fmt"
	"os"

	"github.com/automsg/automsg/config"
	"github.com/automsg/automsg/internal/output"
	"github.com/urfave/cli/v2"
)

// ConfigCmd returns the config command group.
func ConfigCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the tool configuration file",
		Subcommands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write a default configuration file",
				Action: configInitAction,
			},
			{
				Name:      "set",
				Usage:     "Set a configuration value",
				ArgsUsage: "<key> <value>",
				Action:    configSetAction,
			},
			{
				Name:   "path",
				Usage:  "Print the configuration file location",
				Action: configPathAction,
			},
		},
	}
}

// configFilePath resolves the file the config subcommands operate on.
func configFilePath(c *cli.Context) string {
	if path := c.String("config"); path != "" {
		return path
	}
	return config.DefaultPath()
}

func configInitAction(c *cli.Context) error {
	path := configFilePath(c)

	if _, err := os.Stat(path); err == nil {
		output.Noticef("Configuration file already exists: %s", path)
		return nil
	}

	if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}

	output.Successf("Created configuration file: %s", path)
	output.Noticef("Set llm.api_key (or %s) before generating messages.", config.EnvAPIKey)
	return nil
}

func configSetAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: config set <key> <value>")
	}
	key, value := c.Args().Get(0), c.Args().Get(1)

	path := configFilePath(c)
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := config.SaveConfig(cfg, path); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}

	output.Successf("Updated %s", key)
	return nil
}

func configPathAction(c *cli.Context) error {
	fmt.Println(configFilePath(c))
	return nil
}
