package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtwatch/courtwatch/internal/config"
)

func newVenuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "venues",
		Short: "List the configured venues",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagConfig)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			for _, v := range cfg.Venues {
				layout := v.Layout
				if layout == "" {
					layout = "grid"
				}
				name := v.Name
				if name == "" {
					name = v.ID
				}
				fmt.Fprintf(os.Stdout, "%-14s %-8s %s\n", v.ID, layout, name)
			}
			return nil
		},
	}
}
