package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chatterhq/chatter-go/pkg/socketmode"
)

func listenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "Stream events over a socket-mode connection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			defer s.close(context.Background())

			sm := socketmode.New(s.client, socketmode.WithLogger(s.logger))

			done := make(chan error, 1)
			go func() { done <- sm.Run(ctx) }()

			for ev := range sm.Events() {
				fmt.Printf("[%s] %s %s\n", ev.ReceivedAt.Format("15:04:05"), ev.Type, ev.Payload)
			}

			if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
