package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newHealthCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the analysis service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient(v)
			p := NewPrinter(cmd.OutOrStdout())

			status, err := client.HealthCheck(cmd.Context())
			if err != nil {
				NewPrinter(cmd.ErrOrStderr()).Warning(fmt.Sprintf("%s is not healthy: %v", client.Target(), err))
				return err
			}

			p.Success(fmt.Sprintf("%s reachable (HTTP %d, %dms)", client.Target(), status.StatusCode, status.LatencyMs))
			return nil
		},
	}
}
