package main

import (
	"github.com/spf13/cobra"

	"github.com/cardbench/benchconv/src/aids"
	"github.com/cardbench/benchconv/src/schema"
)

func newAidsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aids",
		Short: "Convert the AIDS benchmark dataset and queries",
	}

	cmd.AddCommand(newAidsDatasetCmd(), newAidsQueryCmd())

	return cmd
}

func newAidsDatasetCmd() *cobra.Command {
	var (
		input      string
		schemaPath string
		datasetDir string
		convType   string
	)

	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Convert an AIDS dataset in G-CARE format to CSV format",
		RunE: func(*cobra.Command, []string) error {
			mode, err := aids.ParseMode(convType)
			if err != nil {
				return err
			}

			return aids.ConvertDataset(fsys, log, input, schemaPath, datasetDir, mode)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input txt file")
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "output schema path")
	cmd.Flags().StringVarP(&datasetDir, "dataset", "d", "", "output dataset dir")
	cmd.Flags().StringVarP(&convType, "type", "t", "regular", "conversion type (regular, merge, extend)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func newAidsQueryCmd() *cobra.Command {
	var (
		inputDir   string
		schemaPath string
		outputDir  string
		convType   string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Convert AIDS queries in G-CARE format to gCard patterns",
		RunE: func(*cobra.Command, []string) error {
			mode, err := aids.ParseMode(convType)
			if err != nil {
				return err
			}

			s, err := schema.Load(fsys, schemaPath)
			if err != nil {
				return err
			}

			return aids.ConvertQueries(fsys, log, s, inputDir, outputDir, mode, env.Workers)
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "input query dir")
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema path")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output query dir")
	cmd.Flags().StringVarP(&convType, "type", "t", "regular", "conversion type (regular, merge, extend)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
