package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bodega-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bodega-api/pkg/config"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Migraciones del esquema de bodega (embebidas en el binario)",
		SilenceUsage: true,
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Revierte las últimas N migraciones",
		RunE: func(cmd *cobra.Command, _ []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			return withMigrator(func(mg *postgres.Migrator) error { return mg.Down(steps) })
		},
	}
	downCmd.Flags().Int("steps", 1, "número de migraciones a revertir")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica las migraciones pendientes",
			RunE: func(*cobra.Command, []string) error {
				return withMigrator(func(mg *postgres.Migrator) error { return mg.Up() })
			},
		},
		downCmd,
		&cobra.Command{
			Use:   "version",
			Short: "Muestra la versión aplicada del esquema",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(func(mg *postgres.Migrator) error {
					v, dirty, err := mg.Version()
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "versión %d (dirty=%t)\n", v, dirty)
					return nil
				})
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withMigrator carga la configuración, abre el migrador y lo cierra al terminar.
func withMigrator(fn func(mg *postgres.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, App: "migrate"})

	mg, err := postgres.NewMigrator(cfg.DB.MigrateURL(), log.Component("migrate"))
	if err != nil {
		return err
	}
	defer func() {
		if err := mg.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar migrador")
		}
	}()
	return fn(mg)
}
