package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chatterhq/chatter-go/internal/archive"
	"github.com/chatterhq/chatter-go/pkg/api"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Archive a channel's history into a local SQLite database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			channel, _ := cmd.Flags().GetString("channel")
			dbPath, _ := cmd.Flags().GetString("db")
			pageSize, _ := cmd.Flags().GetInt("page-size")

			if channel == "" {
				return errors.New("--channel is required")
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			defer s.close(ctx)

			if dbPath == "" {
				if s.cfg.Archive != nil {
					dbPath = s.cfg.Archive.Path
				} else {
					dbPath = defaultArchivePath()
				}
			}

			store, err := archive.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			// Resume after the newest message already archived.
			oldest, err := store.LatestTS(ctx, channel)
			if err != nil {
				return err
			}

			pager, err := s.client.ConversationsHistory(api.ConversationsHistoryRequest{
				Channel: channel,
				Oldest:  oldest,
				Limit:   pageSize,
			})
			if err != nil {
				return err
			}

			var fetched, stored int
			for !pager.Done() {
				env, err := pager.Next(ctx)
				if err != nil {
					return err
				}
				var page api.ConversationsHistoryPage
				if !env.Decode(&page) {
					return fmt.Errorf("unexpected conversations.history response shape")
				}
				fetched += len(page.Messages)

				n, err := store.InsertMessages(ctx, channel, page.Messages)
				if err != nil {
					return err
				}
				stored += n
			}

			total, err := store.Count(ctx, channel)
			if err != nil {
				return err
			}
			fmt.Printf("Fetched %d messages, archived %d new (%d total in %s)\n",
				fetched, stored, total, dbPath)
			return nil
		},
	}
	cmd.Flags().StringP("channel", "C", "", "Channel ID to export")
	cmd.Flags().String("db", "", "Archive database path (default from config)")
	cmd.Flags().Int("page-size", 200, "Messages requested per page")
	return cmd
}
