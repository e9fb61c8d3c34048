package main

import (
	"os"

	"signal_bot/internal/modules/config"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "calc",
		Short:        "calc считает параметры ордера и баланс без запуска бота",
		SilenceUsage: true,
	}
	root.AddCommand(newOrderCmd(config.NewConfig), newOutcomeCmd(config.NewConfig))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
