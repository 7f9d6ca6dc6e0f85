// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AminosDz/routing-problem/instanceio"
)

func newValidateCmd(g *globals) *cobra.Command {
	var input, flows string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Replay a flow file against a fresh instance",
		Long: "Replays the flows in order on a freshly read instance and reports " +
			"the first one that breaks a capacity, quota, limit or exclusion rule.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			log := newLogger(cmd, cfg)

			r, err := openInput(cmd, input)
			if err != nil {
				return err
			}
			in, err := instanceio.Read(r, cfg.NetworkOptions()...)
			r.Close()
			if err != nil {
				return err
			}

			fr, err := openInput(cmd, flows)
			if err != nil {
				return err
			}
			list, err := instanceio.ReadFlows(fr)
			fr.Close()
			if err != nil {
				return err
			}

			if err := in.Replay(list); err != nil {
				log.Error("flows rejected", "err", err)
				return err
			}
			routed := make(map[int]struct{}, len(list))
			for _, f := range list {
				routed[f.ID] = struct{}{}
			}
			log.Info("flows valid", "flows", len(list), "demands", len(in.Demands))
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d of %d demands routed\n", len(routed), len(in.Demands))
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "instance file")
	cmd.Flags().StringVarP(&flows, "flows", "f", "", "flow file")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("flows")
	return cmd
}
