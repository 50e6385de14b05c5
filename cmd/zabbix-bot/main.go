package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonny/zabbix-bot/internal/config"
	"github.com/jonny/zabbix-bot/pkg/version"
)

type rootOptions struct {
	configPath string
	envFile    string
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "zabbix-bot",
		Short:         "Slack bot for Zabbix problems and maintenance periods",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "configs/config.yaml", "path to config file")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "optional .env file loaded before config expansion")

	rootCmd.AddCommand(
		newVersionCmd(),
		newValidateCmd(opts),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "zabbix-bot", version.String())
		},
	}
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config OK: %d allowed channel(s), zabbix %s\n",
				len(cfg.Slack.AllowedChannels), cfg.Zabbix.URL)
			return nil
		},
	}
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	if opts.envFile != "" {
		if err := config.LoadEnvFile(opts.envFile); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", opts.configPath, err)
	}
	return cfg, nil
}
