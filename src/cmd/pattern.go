package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardbench/benchconv/src/pattern"
	"github.com/cardbench/benchconv/src/schema"
)

func newPatternCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pattern",
		Short: "Render query patterns in other formats",
	}

	cmd.AddCommand(
		newPatternSQLCmd(),
		newPatternGCareCmd(),
		newPatternCEGCmd(),
		newPatternMergeCEGCmd(),
		newPatternGNCECmd(),
	)

	return cmd
}

func newPatternSQLCmd() *cobra.Command {
	var patternPath, schemaPath string

	cmd := &cobra.Command{
		Use:   "sql",
		Short: "Convert a pattern to a counting SQL query",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := schema.Load(fsys, schemaPath)
			if err != nil {
				return err
			}

			p, err := pattern.Load(fsys, patternPath)
			if err != nil {
				return err
			}

			sql, err := p.SQL(s)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), sql)

			return nil
		},
	}

	cmd.Flags().StringVarP(&patternPath, "pattern", "p", "", "pattern path")
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "gCard schema path")
	_ = cmd.MarkFlagRequired("pattern")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func newPatternGCareCmd() *cobra.Command {
	var patternPath, output string

	cmd := &cobra.Command{
		Use:   "gcare",
		Short: "Convert a pattern to G-CARE format",
		RunE: func(*cobra.Command, []string) error {
			p, err := pattern.Load(fsys, patternPath)
			if err != nil {
				return err
			}

			return p.SaveGCare(fsys, output)
		},
	}

	cmd.Flags().StringVarP(&patternPath, "pattern", "p", "", "pattern path")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path")
	_ = cmd.MarkFlagRequired("pattern")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func newPatternCEGCmd() *cobra.Command {
	var patternPath, output string

	cmd := &cobra.Command{
		Use:   "ceg",
		Short: "Convert a pattern to CEG format",
		RunE: func(*cobra.Command, []string) error {
			p, err := pattern.Load(fsys, patternPath)
			if err != nil {
				return err
			}

			return p.SaveCEG(fsys, output)
		},
	}

	cmd.Flags().StringVarP(&patternPath, "pattern", "p", "", "pattern path")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path")
	_ = cmd.MarkFlagRequired("pattern")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func newPatternMergeCEGCmd() *cobra.Command {
	var patternDir, output string

	cmd := &cobra.Command{
		Use:   "merge-ceg",
		Short: "Merge a directory of patterns into a single CEG pattern file",
		RunE: func(*cobra.Command, []string) error {
			return pattern.MergeCEG(fsys, patternDir, output)
		},
	}

	cmd.Flags().StringVarP(&patternDir, "pattern", "p", "", "pattern directory")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path")
	_ = cmd.MarkFlagRequired("pattern")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func newPatternGNCECmd() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "gnce",
		Short: "Convert patterns to GNCE queries",
		RunE: func(*cobra.Command, []string) error {
			return pattern.ConvertGNCE(fsys, input, output)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "pattern file or directory")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
