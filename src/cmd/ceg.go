package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardbench/benchconv/src/ceg"
)

func newCEGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ceg",
		Short: "Work with CEG estimation results",
	}

	cmd.AddCommand(newCEGPatternCmd(), newCEGPrintCmd())

	return cmd
}

func newCEGPatternCmd() *cobra.Command {
	var input, patternPath, patternType, output string

	cmd := &cobra.Command{
		Use:   "pattern",
		Short: "Record a CEG result as the pattern's count",
		RunE: func(*cobra.Command, []string) error {
			shape, err := ceg.ParseShape(patternType)
			if err != nil {
				return err
			}

			return ceg.Annotate(fsys, input, patternPath, shape, output)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input csv")
	cmd.Flags().StringVarP(&patternPath, "pattern", "p", "", "input pattern")
	cmd.Flags().StringVarP(&patternType, "type", "t", "", "pattern type (acyclic, cyclic)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("pattern")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func newCEGPrintCmd() *cobra.Command {
	var input, patternType string

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print a CEG result the way gCard and GLogS report theirs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			shape, err := ceg.ParseShape(patternType)
			if err != nil {
				return err
			}

			res, err := ceg.ParseResult(fsys, input)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ceg.Report(res, shape))

			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input csv")
	cmd.Flags().StringVarP(&patternType, "type", "t", "", "pattern type (acyclic, cyclic)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}
