package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/ddoc/profile"
)

const version = "0.1.0"

func main() {
	var verbose int

	rootCmd := &cobra.Command{
		Use:     "ddoc",
		Short:   "Extract detailed-design narrative from annotated sources",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbose, nil)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "log verbosity (repeat for more)")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newLSPCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// profileFlag registers --profile, defaulting to $DDOC_PROFILE.
func profileFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVarP(path, "profile", "p", envOr("DDOC_PROFILE", ""), "language profile YAML (default: built-in java)")
}

func loadProfile(path string) (*profile.Profile, error) {
	if path == "" {
		return profile.Java(), nil
	}
	return profile.LoadFile(path)
}
