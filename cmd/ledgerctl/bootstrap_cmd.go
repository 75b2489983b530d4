package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBootstrapCmd(opts *rootOptions) *cobra.Command {
	var org string
	cmd := &cobra.Command{
		Use:   "bootstrap-virtual",
		Short: "Aprovisiona los nodos EXTERNAL y ADJUSTMENT de una organización (idempotente)",
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

			nodes, err := l.registry(opts.log).BootstrapVirtualNodes(cmd.Context(), orgID)
			if err != nil {
				return fmt.Errorf("bootstrap: %w", err)
			}
			for _, n := range nodes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", n.RefID, n.ID, n.Name)
			}
			return nil
		},
	}
	orgFlag(cmd, &org)
	return cmd
}
