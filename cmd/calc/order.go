package main

import (
	"fmt"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/notify"
	"signal_bot/internal/runner"

	"github.com/spf13/cobra"
)

type configLoader func() (*config.Config, error)

func newOrderCmd(load configLoader) *cobra.Command {
	var (
		ticker  string
		price   float64
		side    string
		balance float64
	)

	cmd := &cobra.Command{
		Use:   "order",
		Short: "TP/SL и размер лота для входа",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			action := models.ParseAction(side)
			if !action.IsEntry() {
				return fmt.Errorf("side must be buy or sell, got %q", side)
			}
			if price <= 0 {
				return fmt.Errorf("price must be positive, got %v", price)
			}
			if !cmd.Flags().Changed("balance") {
				balance = cfg.InitialBalance
			}

			calc := runner.NewCalculatorFromConfig(cfg)
			inst := calc.Instrument(ticker)
			params := calc.CalcTradeParams(models.TradeSignal{
				Instrument: inst.Symbol,
				EntryPrice: price,
				Side:       action.Side(),
			}, balance, cfg.RiskFraction)

			_, err = fmt.Fprint(cmd.OutOrStdout(), notify.FormatEntry(inst.Symbol, action.Side(), price, params))
			return err
		},
	}

	cmd.Flags().StringVar(&ticker, "ticker", "XAUUSD", "instrument, e.g. XAUUSD or OANDA:XAUUSD")
	cmd.Flags().Float64Var(&price, "price", 0, "entry price")
	cmd.Flags().StringVar(&side, "side", "buy", "buy or sell")
	cmd.Flags().Float64Var(&balance, "balance", 0, "account balance (default: initial_balance from config)")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}
