package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/cardbench/benchconv/src/schema"
)

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Convert gCard schemas",
	}

	cmd.AddCommand(newSchemaGLogSCmd(), newSchemaDDLCmd())

	return cmd
}

func newSchemaGLogSCmd() *cobra.Command {
	var schemaPath, output string

	cmd := &cobra.Command{
		Use:   "glogs",
		Short: "Convert a gCard schema to the corresponding GLogS schema",
		RunE: func(*cobra.Command, []string) error {
			s, err := schema.Load(fsys, schemaPath)
			if err != nil {
				return err
			}

			glogs, err := s.GLogS()
			if err != nil {
				return err
			}

			data, err := json.Marshal(glogs)
			if err != nil {
				return fmt.Errorf("failed to serialize GLogS schema: %w", err)
			}

			return afero.WriteFile(fsys, output, data, 0644)
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema path")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func newSchemaDDLCmd() *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "ddl",
		Short: "Generate SQL DDL from a gCard schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := schema.Load(fsys, schemaPath)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), s.DuckDBDDL())

			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema path")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}
