package main

import (
	"github.com/spf13/cobra"

	"github.com/cardbench/benchconv/src/dataset"
	"github.com/cardbench/benchconv/src/schema"
)

func newDatasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Transform CSV datasets",
	}

	cmd.AddCommand(
		newDatasetGCareCmd(),
		newDatasetUniqueVIDCmd(),
		newDatasetMergeEdgesCmd(),
		newDatasetNTriplesCmd(),
	)

	return cmd
}

func newDatasetGCareCmd() *cobra.Command {
	var schemaPath, datasetDir, output string

	cmd := &cobra.Command{
		Use:   "gcare",
		Short: "Convert a CSV dataset to G-CARE format",
		RunE: func(*cobra.Command, []string) error {
			s, err := schema.Load(fsys, schemaPath)
			if err != nil {
				return err
			}

			store := dataset.NewStore(fsys, datasetDir)
			vnum, enum, err := dataset.ExportGCare(fsys, s, store, output)
			if err != nil {
				return err
			}

			log.Infof("vnum: %d", vnum)
			log.Infof("enum: %d", enum)

			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema path")
	cmd.Flags().StringVarP(&datasetDir, "dataset", "d", "", "dataset dir")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("dataset")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func newDatasetUniqueVIDCmd() *cobra.Command {
	var schemaPath, datasetDir string

	cmd := &cobra.Command{
		Use:   "unique-vid",
		Short: "Make vertex ids of a dataset globally unique",
		RunE: func(*cobra.Command, []string) error {
			s, err := schema.Load(fsys, schemaPath)
			if err != nil {
				return err
			}

			return dataset.MakeVertexIDsUnique(s, dataset.NewStore(fsys, datasetDir))
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "gCard schema path")
	cmd.Flags().StringVarP(&datasetDir, "dataset", "d", "", "dataset dir")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func newDatasetMergeEdgesCmd() *cobra.Command {
	var schemaPath, datasetDir, output string

	cmd := &cobra.Command{
		Use:   "merge-edges",
		Short: "Merge separate CSV edge lists into a single CEG edge list",
		RunE: func(*cobra.Command, []string) error {
			s, err := schema.Load(fsys, schemaPath)
			if err != nil {
				return err
			}

			return dataset.MergeEdges(fsys, s, dataset.NewStore(fsys, datasetDir), output)
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "gCard schema path")
	cmd.Flags().StringVarP(&datasetDir, "dataset", "d", "", "dataset dir")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("dataset")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func newDatasetNTriplesCmd() *cobra.Command {
	var schemaPath, datasetDir, output string

	cmd := &cobra.Command{
		Use:   "ntriples",
		Short: "Export a CSV dataset as an RDF N-Triples file",
		RunE: func(*cobra.Command, []string) error {
			s, err := schema.Load(fsys, schemaPath)
			if err != nil {
				return err
			}

			return dataset.ExportNTriples(fsys, s, dataset.NewStore(fsys, datasetDir), output)
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "gCard schema path")
	cmd.Flags().StringVarP(&datasetDir, "dataset", "d", "", "dataset dir")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output .nt file")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("dataset")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
