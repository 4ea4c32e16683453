package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"footcrop/app/server"
	"footcrop/types"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the crop API over HTTP",
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
			defer st.Close()

			s := server.NewServer(getenv("SERVER_ADDR", ":8080"), st)

			errCh := make(chan error, 1)
			go func() {
				errCh <- s.Run()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				log.Println("Received shutdown signal, shutting down server...")
				s.Stop()
			}
			return nil
		},
	}
}
