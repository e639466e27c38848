package commands

import (
	"encoding/json"
	"fmt"

	nitter "github.com/anatolykoptev/go-nitter"
	"github.com/spf13/cobra"
)

func (a *app) tweetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tweet <handle> <id>",
		Short: "Fetch a single tweet from its permalink page.",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			t, err := client.GetTweet(cmd.Context(), args[0], args[1])
			if err != nil {
				return &statusError{status: nitter.StatusOf(err), err: err}
			}
			if err := json.NewEncoder(cmd.OutOrStdout()).Encode(t); err != nil {
				return fmt.Errorf("write tweet: %w", err)
			}
			return nil
		},
	}
}
