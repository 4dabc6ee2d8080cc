package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Akshit7103/IVR/internal/config"
	"github.com/Akshit7103/IVR/internal/store"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Load transactions from a YAML fixture into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			txns, err := store.LoadSeedFile(args[0])
			if err != nil {
				return err
			}

			s, err := store.NewSQLiteStore(cfg.DBPath)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := store.Seed(context.Background(), s, txns); err != nil {
				return err
			}

			fmt.Printf("Seeded %d transactions into %s\n", len(txns), cfg.DBPath)
			return nil
		},
	}
}
