package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Akshit7103/IVR/internal/config"
	"github.com/Akshit7103/IVR/internal/flow"
	"github.com/Akshit7103/IVR/internal/store"
	"github.com/Akshit7103/IVR/internal/telephony"
)

func callCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call <txn-id>",
		Short: "Place a verification call for a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.ValidateForDialing(); err != nil {
				return err
			}

			log, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer log.Sync()

			s, err := store.NewSQLiteStore(cfg.DBPath)
			if err != nil {
				return err
			}
			defer s.Close()

			recorder := flow.NewRecorder(s, log)
			dialer := telephony.NewTwilioClient(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken)
			orchestrator := flow.NewOrchestrator(s, recorder, dialer,
				cfg.PublicURL, cfg.Twilio.FromNumber, log)

			call, err := orchestrator.StartCall(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Call placed: %s\n", call.SID)
			return nil
		},
	}
}
