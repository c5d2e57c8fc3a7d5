package main

import (
	"github.com/spf13/cobra"
)

func newAuthCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Obtain a session key through the desktop authorization flow",
		Long: `Obtain a session key in two steps:

	lastfm auth token            # prints a token and the URL to authorize it
	lastfm auth session <token>  # after authorizing, prints the session key

Both steps need the shared secret.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "token",
			Short: "Request a token and print the URL that authorizes it",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				token, err := c.client.Auth.Token(cmd.Context())
				if err != nil {
					return err
				}
				return c.print(cmd, map[string]string{"token": token, "url": c.client.Auth.AuthURL(token)})
			},
		},
		&cobra.Command{
			Use:   "session <token>",
			Short: "Exchange an authorized token for a session key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := c.client.Auth.Session(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return c.print(cmd, map[string]any{
					"username":   s.Username,
					"key":        s.Key,
					"subscriber": s.Subscriber,
				})
			},
		},
	)
	return cmd
}
