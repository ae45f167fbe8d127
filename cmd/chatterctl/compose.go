package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/chatterhq/chatter-go/pkg/api"
	"github.com/chatterhq/chatter-go/pkg/block"
)

func composeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compose",
		Short: "Compose and post a message interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				channel  string
				headline string
				body     string
				confirm  bool
			)

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Channel ID").
						Placeholder("C0123456789").
						Value(&channel).
						Validate(func(s string) error {
							if s == "" {
								return errors.New("channel is required")
							}
							return nil
						}),
					huh.NewInput().
						Title("Headline").
						Description("Shown as a header block; leave empty to skip").
						Value(&headline),
					huh.NewText().
						Title("Message").
						Description("Markdown body of the message").
						Value(&body).
						Validate(func(s string) error {
							if s == "" {
								return errors.New("message body is required")
							}
							return nil
						}),
				),
				huh.NewGroup(
					huh.NewConfirm().
						Title("Send it?").
						Value(&confirm),
				),
			)
			if err := form.Run(); err != nil {
				return err
			}
			if !confirm {
				fmt.Println("Discarded.")
				return nil
			}

			blocks, err := composeBlocks(headline, body)
			if err != nil {
				return err
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			defer s.close(ctx)

			resp, err := s.client.ChatPostMessage(ctx, api.ChatPostMessageRequest{
				Channel: channel,
				Text:    body,
				Blocks:  blocks,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Sent to %s (ts: %s)\n", resp.Channel, resp.TS)
			return nil
		},
	}
}

// composeBlocks renders the form answers as blocks: an optional header
// above a markdown section.
func composeBlocks(headline, body string) (block.Blocks, error) {
	var blocks block.Blocks

	if headline != "" {
		header, err := block.Header(headline)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, header)
	}

	section, err := block.Section().Text(block.Markdown(body)).Build()
	if err != nil {
		return nil, err
	}
	return append(blocks, section), nil
}
