// Package cli implements the scout command line client.
package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stablescout/stablescout/config"
	"github.com/stablescout/stablescout/log"
	"github.com/stablescout/stablescout/relay"
)

const envPrefix = "SCOUT"

// Execute runs the scout command
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree with its own viper instance
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "scout",
		Short: "Ask the stablecoin analysis service from the terminal",
		Long: `scout sends a query to the analysis service and prints the
conversation it returns as a readable transcript.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// stdout belongs to the transcript
			log.SetOutput(cmd.ErrOrStderr())
			log.SetLevel(v.GetString("log-level"))
		},
	}

	cfg := config.Get()
	flags := rootCmd.PersistentFlags()
	flags.String("upstream", cfg.UpstreamURL, "analysis service base URL")
	flags.Duration("timeout", cfg.UpstreamTimeout, "bound on a single analysis call")
	flags.String("log-level", "warn", "log level (debug, info, warn, error, disabled)")
	_ = v.BindPFlag("upstream", flags.Lookup("upstream"))
	_ = v.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = v.BindPFlag("log-level", flags.Lookup("log-level"))

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd.AddCommand(newAskCmd(v), newHealthCmd(v))
	return rootCmd
}

func newClient(v *viper.Viper) *relay.Client {
	return relay.New(relay.Config{
		BaseURL:       v.GetString("upstream"),
		Timeout:       v.GetDuration("timeout"),
		HealthTimeout: minDuration(v.GetDuration("timeout"), relay.DefaultHealthTimeout),
	})
}

func minDuration(a, b time.Duration) time.Duration {
	if a > 0 && a < b {
		return a
	}
	return b
}
