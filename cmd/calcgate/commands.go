package main

import (
	"fmt"

	"github.com/ncobase/calcgate/config"
	"github.com/ncobase/calcgate/data"
	"github.com/ncobase/calcgate/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "calcgate",
		Short: "Gateway for groundwater model calculations",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.SetPath(configFile)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")

	rootCmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newVersionCommand(),
	)
	return rootCmd
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Args:  cobra.NoArgs,
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := InitializeApp()
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			defer cleanup()
			return app.Run()
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "migrate",
		Args:    cobra.NoArgs,
		Aliases: []string{"m"},
		Short:   "Apply pending registry migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.GetConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.Data == nil || cfg.Data.Database == nil {
				return ErrInvalidConfig
			}
			cfg.Data.Database.Migrate = false

			ctx := cmd.Context()
			d, cleanup, err := data.New(ctx, cfg.Data)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := d.Migrate(ctx); err != nil {
				return err
			}
			fmt.Printf("migrations applied on %s\n", d.DriverName())
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Args:  cobra.NoArgs,
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !asJSON {
				version.Print()
				return nil
			}
			s, err := version.GetVersionInfo().JSON()
			if err != nil {
				return err
			}
			fmt.Println(s)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
