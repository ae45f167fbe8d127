package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chatterhq/chatter-go/pkg/api"
	"github.com/chatterhq/chatter-go/pkg/block"
)

func sendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Post a message to a channel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			channel, _ := cmd.Flags().GetString("channel")
			text, _ := cmd.Flags().GetString("text")
			blocksFile, _ := cmd.Flags().GetString("blocks")
			threadTS, _ := cmd.Flags().GetString("thread")

			if channel == "" {
				return errors.New("--channel is required")
			}
			if text == "" && blocksFile == "" {
				return errors.New("nothing to send: provide --text or --blocks")
			}

			var blocks block.Blocks
			if blocksFile != "" {
				var err error
				if blocks, err = loadBlocksFile(blocksFile); err != nil {
					return err
				}
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			defer s.close(ctx)

			resp, err := s.client.ChatPostMessage(ctx, api.ChatPostMessageRequest{
				Channel:  channel,
				Text:     text,
				Blocks:   blocks,
				ThreadTS: threadTS,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Sent to %s (ts: %s)\n", resp.Channel, resp.TS)
			return nil
		},
	}
	cmd.Flags().StringP("channel", "C", "", "Channel ID to post to")
	cmd.Flags().StringP("text", "t", "", "Message text (fallback when blocks are given)")
	cmd.Flags().String("blocks", "", "YAML file with a list of blocks")
	cmd.Flags().String("thread", "", "Thread timestamp to reply under")
	return cmd
}

// loadBlocksFile reads a YAML file containing a list of blocks and decodes
// it through the block union, so malformed or unknown blocks are rejected
// before anything is sent.
func loadBlocksFile(path string) (block.Blocks, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// YAML and the block union meet over JSON.
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", path, err)
	}

	var blocks block.Blocks
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("decoding blocks in %s: %w", path, err)
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%s contains no blocks", path)
	}
	return blocks, nil
}
