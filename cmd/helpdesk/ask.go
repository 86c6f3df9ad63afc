package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/0xcro3dile/assessiq-helpdesk/internal/adapters/loader"
	"github.com/0xcro3dile/assessiq-helpdesk/internal/adapters/store"
	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/usecases"
)

func newAskCmd() *cobra.Command {
	var (
		knowledgePath string
		explain       bool
	)

	cmd := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Answer one question and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := loader.NewSource(knowledgePath)
			if err != nil {
				return err
			}
			kb, err := source.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading knowledge from %s: %w", source.Name(), err)
			}

			uc := usecases.NewQueryUseCase(store.NewInMemoryStore(kb), nil)
			query := strings.Join(args, " ")
			out := cmd.OutOrStdout()

			if explain {
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ENTRY\tTOPIC\tPHRASE\tHEURISTIC\tSCORE")
				for _, p := range uc.Explain(query) {
					fmt.Fprintf(tw, "%d\t%s\t%q\t%s\t%.2f\n", p.Entry, kb.Entry(p.Entry).Topic, p.Phrase, p.Heuristic, p.Score)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				fmt.Fprintln(out)
			}

			fmt.Fprintln(out, uc.Match(query).Answer)
			return nil
		},
	}

	cmd.Flags().StringVar(&knowledgePath, "knowledge", "", "knowledge file; empty uses the built-in base")
	cmd.Flags().BoolVar(&explain, "explain", false, "list every scoring proposal before the answer")
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a knowledge file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := loader.NewSource(args[0])
			if err != nil {
				return err
			}
			kb, err := source.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d entries\n", args[0], kb.Len())
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the built-in knowledge base as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := loader.NewBuiltinSource().Load(cmd.Context())
			if err != nil {
				return err
			}
			return loader.Encode(cmd.OutOrStdout(), kb)
		},
	}
}
