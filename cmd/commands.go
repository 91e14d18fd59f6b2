package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	recordsrender "github.com/bnema/emetic/internal/adapters/render/records"
	"github.com/bnema/emetic/internal/application"
	"github.com/bnema/emetic/internal/config"
)

func saveCommand(cfg config.Config) application.SaveCommand {
	return application.SaveCommand{
		Temperature: cfg.Temperature,
		Symptoms:    cfg.Symptoms,
		Note:        cfg.Note,
	}
}

func newSaveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save [config_path]",
		Short: "Upload temperature data as configured",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runProtocol(cmd, args, func(ctx context.Context, cfg config.Config, service *application.Service) error {
				return service.Save(ctx, saveCommand(cfg))
			})
		},
	}
}

func newSelectCmd(app *app) *cobra.Command {
	var pretty bool

	selectCmd := &cobra.Command{
		Use:   "select [config_path]",
		Short: "View temperature data of this month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runProtocol(cmd, args, func(ctx context.Context, _ config.Config, service *application.Service) error {
				records, err := service.Select(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if pretty {
					rendered, err := app.recordRenderer(records, recordsrender.RenderOptions{Now: app.now()})
					if err != nil {
						return fmt.Errorf("render records: %w", err)
					}
					_, err = fmt.Fprintln(out, rendered)
					return err
				}

				for _, record := range records {
					if _, err := fmt.Fprintln(out, recordsrender.FormatTSV(record)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	selectCmd.Flags().BoolVar(&pretty, "pretty", false, "render a styled table instead of tab separated lines")

	return selectCmd
}

func newCheckCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [config_path]",
		Short: "Check if temperature data has already been uploaded",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runProtocol(cmd, args, func(ctx context.Context, _ config.Config, service *application.Service) error {
				_, err := service.Check(ctx)
				return err
			})
		},
	}
}

func newUpdateCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update [config_path]",
		Short: "Upload temperature data only if not uploaded yet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runProtocol(cmd, args, func(ctx context.Context, cfg config.Config, service *application.Service) error {
				_, err := service.Update(ctx, saveCommand(cfg))
				return err
			})
		},
	}
}

func newConfigCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config [path]",
		Short: "Create a config file filled with default values",
		Long:  `Writes the default config to path ("-" for stdout, default ~/.emetic_config). An explicitly empty path prints the default path instead.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && args[0] == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), config.DefaultPath(app.homeDir))
				return err
			}
			return config.WriteTemplate(app.configPath(args), cmd.OutOrStdout(), app.homeDir)
		},
	}
}
