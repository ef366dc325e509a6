package main

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cardbench/benchconv/src/app"
)

// Shared process state, initialized before any subcommand runs.
var (
	fsys afero.Fs
	env  app.EnvVars
	log  *zap.SugaredLogger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "benchconv",
		Short: "Convert graph datasets and query patterns between cardinality-estimation benchmark formats",
		PersistentPreRun: func(*cobra.Command, []string) {
			fsys = afero.NewOsFs()
			env = app.MustLoadEnv()
			log = app.NewLogger(env.Environment)
		},
		SilenceUsage: true,
	}

	root.AddCommand(
		newAidsCmd(),
		newDatasetCmd(),
		newPatternCmd(),
		newCEGCmd(),
		newSchemaCmd(),
		newIMDBCmd(),
		newKuzuCmd(),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
