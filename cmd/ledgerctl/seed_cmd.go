package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var org string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga datos demo: unidades, ítems, ubicación, bodega, nodos virtuales y un saldo inicial",
		RunE: func(cmd *cobra.Command, args []string) error {
			orgID, err := parseOrg(org)
			if err != nil {
				return err
			}
			l, err := opts.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer l.close()

			res, err := seedDemo(cmd.Context(), l.tx, l.repos, opts.log, orgID)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "bodega:  %s (nodo %s)\n", res.WarehouseID, res.WarehouseNodeID)
			fmt.Fprintf(out, "evento:  %s (%d líneas)\n", res.EventID, res.Lines)
			return nil
		},
	}
	orgFlag(cmd, &org)
	return cmd
}
