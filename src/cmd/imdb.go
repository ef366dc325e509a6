package main

import (
	"github.com/spf13/cobra"

	"github.com/cardbench/benchconv/src/imdb"
)

func newIMDBCmd() *cobra.Command {
	var (
		datasetDir string
		outputDir  string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "imdb",
		Short: "Convert the IMDB dataset to property graph format",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("workers") {
				workers = env.Workers
			}

			c := imdb.NewConverter(fsys, log, datasetDir, outputDir)

			return c.Process(workers)
		},
	}

	cmd.Flags().StringVarP(&datasetDir, "dataset", "d", "", "dataset dir")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output dir")
	cmd.Flags().IntVarP(&workers, "workers", "w", 8, "number of workers")
	_ = cmd.MarkFlagRequired("dataset")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
