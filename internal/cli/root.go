// Package cli implements the blogcal command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/thomas11/blogcal/internal/config"
)

// Version is set at link time.
var Version = "dev"

type app struct {
	cfgFile string
	debug   bool

	conf   *config.Config
	logger *log.Logger
}

// NewRootCmd builds the command tree. Configuration is loaded before any
// subcommand runs.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "blogcal",
		Short: "Static blog generator with a post calendar",
		Long: `blogcal reads Markdown posts with YAML front matter and writes a static
site: pages, a month-by-month post calendar as JSON, JSON-LD metadata and
RSS/Atom feeds.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./_config.yml)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(a.newBuildCmd())
	root.AddCommand(a.newServeCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

func (a *app) initialize(logOut io.Writer) error {
	a.logger = newLogger(logOut, a.debug)

	conf, err := config.Load(a.cfgFile, a.logger)
	if err != nil {
		return err
	}
	a.conf = conf
	a.logger.Debug("Configuration loaded",
		"source", conf.SourceDir,
		"public", conf.PublicDir,
		"env", conf.Env)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		// No configuration needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "blogcal", Version)
		},
	}
}
