package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"

	nitter "github.com/anatolykoptev/go-nitter"
	"github.com/spf13/cobra"
)

func (a *app) timelineCommands() []*cobra.Command {
	return []*cobra.Command{
		{
			Use:   "search <query>",
			Short: "Search tweets across the instance.",
			Args:  exactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runTimeline(cmd, nitter.Search(args[0]))
			},
		},
		{
			Use:   "user <handle>",
			Short: "Read a user's tweets, replies excluded.",
			Args:  exactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runTimeline(cmd, nitter.UserTimeline(args[0]))
			},
		},
		{
			Use:   "with-replies <handle>",
			Short: "Read a user's tweets and replies.",
			Args:  exactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runTimeline(cmd, nitter.UserTimelineWithReplies(args[0]))
			},
		},
		{
			Use:   "media <handle>",
			Short: "Read a user's media tab.",
			Args:  exactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runTimeline(cmd, nitter.UserMedia(args[0]))
			},
		},
		{
			Use:   "user-search <handle> <query>",
			Short: "Search within one user's tweets.",
			Args:  exactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runTimeline(cmd, nitter.UserSearch(args[0], args[1]))
			},
		},
	}
}

// runTimeline streams q to stdout as JSON lines.
func (a *app) runTimeline(cmd *cobra.Command, q nitter.Query) error {
	client, err := a.client()
	if err != nil {
		return err
	}

	s := client.Timeline(a.cfg.streamConfig(q))
	enc := json.NewEncoder(cmd.OutOrStdout())
	for t, err := range s.All(cmd.Context()) {
		if err != nil {
			break
		}
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("write tweet: %w", err)
		}
	}

	slog.Debug("timeline done",
		slog.String("query", q.String()),
		slog.Int("emitted", s.Emitted()),
		slog.String("status", s.Status().String()))

	if st := s.Status(); st != nitter.StatusEnded {
		return &statusError{status: st, err: s.Err()}
	}
	return nil
}
