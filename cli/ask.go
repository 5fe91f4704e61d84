package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stablescout/stablescout/relay"
	"github.com/stablescout/stablescout/render"
)

func newAskCmd(v *viper.Viper) *cobra.Command {
	var rawJSON bool

	cmd := &cobra.Command{
		Use:   "ask <query...>",
		Short: "Analyze a query and print the transcript",
		Example: `  scout ask best yield on USDC
  scout ask --json "risk of holding DAI"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := NewPrinter(cmd.OutOrStdout())
			errp := NewPrinter(cmd.ErrOrStderr())

			query := strings.Join(args, " ")
			if strings.TrimSpace(query) == "" {
				errp.Error("Please enter a query to analyze.")
				return relay.ErrValidation
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			raw, err := newClient(v).Analyze(ctx, query)
			if err != nil {
				if re, ok := relay.AsError(err); ok {
					errp.Error(re.UserMessage())
					if re.Retryable() {
						errp.Hint("This may be temporary; try again shortly.")
					}
				}
				return err
			}

			if rawJSON {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(raw))
				return err
			}
			return p.Transcript(render.RenderWith(raw, render.Terminal))
		},
	}

	cmd.Flags().BoolVar(&rawJSON, "json", false, "print the upstream JSON instead of the transcript")
	return cmd
}
