package main

import (
	"fmt"

	"signal_bot/internal/models"
	"signal_bot/internal/notify"
	"signal_bot/internal/runner"

	"github.com/spf13/cobra"
)

// outcome прогоняет цепочку TP/SL по счёту, как это сделал бы бот.
func newOutcomeCmd(load configLoader) *cobra.Command {
	var (
		actions []string
		balance float64
	)

	cmd := &cobra.Command{
		Use:   "outcome",
		Short: "баланс после TP HIT / SL HIT",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("balance") {
				balance = cfg.InitialBalance
			}

			acc := runner.NewAccount(balance, cfg.RiskFraction)
			for _, raw := range actions {
				action := models.ParseAction(raw)
				tr, err := acc.Apply(action)
				if err != nil {
					return fmt.Errorf("%q: %w", raw, err)
				}
				if _, err := fmt.Fprint(cmd.OutOrStdout(), notify.FormatTransition("account", tr)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&actions, "action", nil, `"tp hit" or "sl hit", repeatable`)
	cmd.Flags().Float64Var(&balance, "balance", 0, "starting balance (default: initial_balance from config)")
	_ = cmd.MarkFlagRequired("action")
	return cmd
}
