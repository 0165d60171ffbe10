package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/ddoc/lsp"
)

func newLSPCmd() *cobra.Command {
	var profilePath string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := loadProfile(profilePath)
			if err != nil {
				return err
			}
			server, err := lsp.NewServer(version, prof)
			if err != nil {
				return err
			}
			return server.RunStdio()
		},
	}
	profileFlag(cmd, &profilePath)

	return cmd
}
