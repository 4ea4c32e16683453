package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"footcrop/types"
	"footcrop/watcher/service"

	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Crop every PDF dropped into the source directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnv(); err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, err := openStore(ctx, types.Settings{FooterHeight: cfg.FooterHeight, Box: cfg.Box})
			if err != nil {
				return err
			}
			defer func() {
				log.Println("Closing job store...")
				if err := st.Close(); err != nil {
					log.Printf("error closing store: %v\n", err)
				}
			}()

			svc, err := service.New(cfg, st)
			if err != nil {
				return err
			}
			svc.Run(ctx)
			return nil
		},
	}
}
