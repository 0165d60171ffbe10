package main

import (
	"github.com/spf13/cobra"
)

func newProfileCmd() *cobra.Command {
	var profilePath string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Print the effective language profile as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := loadProfile(profilePath)
			if err != nil {
				return err
			}
			return prof.Encode(cmd.OutOrStdout())
		},
	}
	profileFlag(cmd, &profilePath)

	return cmd
}
