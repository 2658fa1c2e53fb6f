package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/SbEnChOi/world-energy-ubiquity/internal/config"
	"github.com/SbEnChOi/world-energy-ubiquity/internal/server"
)

// flags shared by every projection command.
type flags struct {
	configPath string
	seedsPath  string
	resource   string
	seed       int64
	year       int
}

func main() {
	var f flags

	rootCmd := &cobra.Command{
		Use:          "ecotimeline",
		Short:        "Project national resource reserves from 1990 to 2050",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&f.configPath, "config", "c", "", "config file (default ecotimeline.toml if present)")
	rootCmd.PersistentFlags().StringVar(&f.seedsPath, "seeds", "", "seed table YAML file or project directory")
	rootCmd.PersistentFlags().StringVarP(&f.resource, "resource", "r", "", "resource: Oil, Coal or Gas")
	rootCmd.PersistentFlags().Int64VarP(&f.seed, "seed", "s", 0, "noise seed (0 picks a random one)")
	rootCmd.PersistentFlags().IntVarP(&f.year, "year", "y", 0, "year to report")

	rootCmd.AddCommand(projectCmd(&f))
	rootCmd.AddCommand(seriesCmd(&f))
	rootCmd.AddCommand(validateCmd(&f))
	rootCmd.AddCommand(exportCmd(&f))
	rootCmd.AddCommand(serveCmd(&f))
	rootCmd.AddCommand(configCmd(&f))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func projectCmd(f *flags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Generate a snapshot and print every entity for one year",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runProject(f, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full snapshot as JSON")
	return cmd
}

func seriesCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "series",
		Short: "Print the global reserve and consumption series",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSeries(f)
		},
	}
}

func validateCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the seed table and the projection it produces",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runValidate(f)
		},
	}
}

func exportCmd(f *flags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the snapshot to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runExport(f, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default ecotimeline-<resource>-<year>.xlsx)")
	return cmd
}

func serveCmd(f *flags) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON API server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			env, err := loadAndValidate(f)
			if err != nil {
				return err
			}
			if port != 0 {
				env.cfg.Server.Port = port
			}
			srv, err := server.New(env.cfg, env.table)
			if err != nil {
				return err
			}
			return srv.Start()
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (overrides config)")
	return cmd
}

func configCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the resolved configuration as TOML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := config.DefaultPath
			if len(args) == 1 {
				path = args[0]
			}
			return runConfigInit(f, path, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}
