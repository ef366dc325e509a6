package main

import (
	"github.com/spf13/cobra"

	"github.com/cardbench/benchconv/src/kuzu"
	"github.com/cardbench/benchconv/src/pattern"
	"github.com/cardbench/benchconv/src/schema"
)

// The Kuzu driver is an external collaborator; the CLI emits the
// statements as a script for the Kuzu shell instead of linking the
// driver in. Embedders execute the same statements through kuzu.Conn.
func newKuzuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kuzu",
		Short: "Build Kuzu statements for a dataset and its patterns",
	}

	cmd.AddCommand(newKuzuCreateCmd(), newKuzuQueryCmd())

	return cmd
}

func newKuzuCreateCmd() *cobra.Command {
	var datasetDir, schemaPath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Emit the statements that create and load a Kuzu database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := schema.Load(fsys, schemaPath)
			if err != nil {
				return err
			}

			conn := kuzu.ScriptConn{W: cmd.OutOrStdout()}

			return kuzu.CreateDatabase(conn, s, datasetDir)
		},
	}

	cmd.Flags().StringVarP(&datasetDir, "dataset", "d", "", "dataset directory")
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "gCard schema path")
	_ = cmd.MarkFlagRequired("dataset")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func newKuzuQueryCmd() *cobra.Command {
	var (
		patternPath string
		schemaPath  string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Emit the match statement that counts a pattern",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := schema.Load(fsys, schemaPath)
			if err != nil {
				return err
			}

			p, err := pattern.Load(fsys, patternPath)
			if err != nil {
				return err
			}

			query, err := kuzu.BuildMatchQuery(p, s)
			if err != nil {
				return err
			}

			if verbose {
				log.Infof("cypher: %s", query)
			}

			conn := kuzu.ScriptConn{W: cmd.OutOrStdout()}
			_, err = conn.Execute(query)

			return err
		},
	}

	cmd.Flags().StringVarP(&patternPath, "pattern", "p", "", "pattern path")
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "gCard schema path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show the cypher query")
	_ = cmd.MarkFlagRequired("pattern")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}
