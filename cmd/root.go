package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tasneemkhan/portfolio/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Serve a single-page developer portfolio",
	Long: `portfolio serves a one-page portfolio: hero, about, skills, projects,
work experience and contact sections built from compiled-in tables.

The nav highlights the section a visitor picks and drives the mobile menu
through small HTMX requests; page views are counted with hashed IPs.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// loadConfig reads the config file and applies --verbose.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Log.Level = "debug"
		cfg.Log.Development = true
	}
	return cfg, nil
}
