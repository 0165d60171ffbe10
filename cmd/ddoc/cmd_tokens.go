package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ddoc/lexer"
)

func newTokensCmd() *cobra.Command {
	var profilePath string
	var commentsOnly bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Dump the tokens and classified comments of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := loadProfile(profilePath)
			if err != nil {
				return err
			}
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read %s: %w", filename, err)
			}

			res, err := lexer.Tokenize(data, filename, prof)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !commentsOnly {
				for _, tok := range res.Tokens {
					fmt.Fprintf(out, "%d:%d\t%s\t%q\n", tok.Span.Start.Line, tok.Span.Start.Column, tok.Kind, tok.Literal)
				}
			}
			for _, c := range res.Comments {
				fmt.Fprintf(out, "%d:%d-%d:%d\t%s\n", c.Span.Start.Line, c.Span.Start.Column, c.Span.End.Line, c.Span.End.Column, c.Dialect)
				for _, l := range c.Narrative {
					fmt.Fprintf(out, "\t%s\t%s\n", l.Kind, strings.TrimSpace(l.Keyword+" "+l.Text))
				}
			}
			for _, d := range res.Diagnostics {
				fmt.Fprintln(cmd.ErrOrStderr(), d)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&commentsOnly, "comments", "c", false, "only list comments")
	profileFlag(cmd, &profilePath)

	return cmd
}
