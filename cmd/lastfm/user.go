package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"LastFM-Go/pkg/lastfm"
)

type userOptions struct {
	Page   int
	Limit  int
	Period string
	Kind   string
	From   string
	To     string
}

func newUserCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Read a user's profile, listening data and charts",
	}
	cmd.AddCommand(
		userInfoCommand(c),
		userRecentCommand(c),
		userTopCommand(c),
		userChartCommand(c),
		userChartsCommand(c),
		userLovedCommand(c),
		userFriendsCommand(c),
	)
	return cmd
}

// Page and limit default to -1, which leaves the choice to the service.
func addPageFlags(cmd *cobra.Command, opts *userOptions) {
	cmd.Flags().IntVar(&opts.Page, "page", -1, "Page to fetch.")
	cmd.Flags().IntVar(&opts.Limit, "limit", -1, "Items per page.")
}

func userInfoCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "info <user>",
		Short: "Show a user's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := c.client.User.Info(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.print(cmd, u)
		},
	}
}

func userRecentCommand(c *cli) *cobra.Command {
	opts := &userOptions{}
	cmd := &cobra.Command{
		Use:   "recent <user>",
		Short: "List the tracks a user listened to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.client.User.RecentTracks(cmd.Context(), args[0], opts.Page, opts.Limit, false)
			if err != nil {
				return err
			}
			return c.print(cmd, newPageOutput(res))
		},
	}
	addPageFlags(cmd, opts)
	return cmd
}

func userLovedCommand(c *cli) *cobra.Command {
	opts := &userOptions{}
	cmd := &cobra.Command{
		Use:   "loved <user>",
		Short: "List a user's loved tracks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.client.User.LovedTracks(cmd.Context(), args[0], opts.Page, opts.Limit)
			if err != nil {
				return err
			}
			return c.print(cmd, newPageOutput(res))
		},
	}
	addPageFlags(cmd, opts)
	return cmd
}

func userFriendsCommand(c *cli) *cobra.Command {
	opts := &userOptions{}
	cmd := &cobra.Command{
		Use:   "friends <user>",
		Short: "List a user's friends",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.client.User.Friends(cmd.Context(), args[0], false, opts.Page, opts.Limit)
			if err != nil {
				return err
			}
			return c.print(cmd, newPageOutput(res))
		},
	}
	addPageFlags(cmd, opts)
	return cmd
}

func userTopCommand(c *cli) *cobra.Command {
	opts := &userOptions{}
	cmd := &cobra.Command{
		Use:   "top <user>",
		Short: "List a user's top artists, albums, tracks or tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := lastfm.ParsePeriod(opts.Period)
			if err != nil {
				return err
			}
			ctx, user := cmd.Context(), args[0]

			var items any
			switch opts.Kind {
			case "artists":
				items, err = c.client.User.TopArtists(ctx, user, period, opts.Limit)
			case "albums":
				items, err = c.client.User.TopAlbums(ctx, user, period, opts.Limit)
			case "tracks":
				items, err = c.client.User.TopTracks(ctx, user, period, opts.Limit)
			case "tags":
				items, err = c.client.User.TopTags(ctx, user, opts.Limit)
			default:
				return fmt.Errorf("unknown kind %q: want artists, albums, tracks or tags", opts.Kind)
			}
			if err != nil {
				return err
			}
			return c.print(cmd, items)
		},
	}
	cmd.Flags().StringVar(&opts.Kind, "kind", "artists", "One of artists, albums, tracks or tags.")
	cmd.Flags().StringVar(&opts.Period, "period", "", "One of overall, 7day, 1month, 3month, 6month or 12month.")
	cmd.Flags().IntVar(&opts.Limit, "limit", -1, "Number of entries.")
	return cmd
}

func userChartCommand(c *cli) *cobra.Command {
	opts := &userOptions{}
	cmd := &cobra.Command{
		Use:   "chart <user>",
		Short: "Show a weekly album, artist or track chart",
		Long: `Show a weekly chart. Without --from and --to the latest week is shown;
the available ranges are listed by "lastfm user charts".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (opts.From == "") != (opts.To == "") {
				return fmt.Errorf("--from and --to must be given together")
			}
			ctx, user := cmd.Context(), args[0]

			var (
				out any
				err error
			)
			switch opts.Kind {
			case "albums":
				var ch lastfm.Chart[lastfm.Album]
				ch, err = c.client.User.WeeklyAlbumChart(ctx, user, opts.From, opts.To, opts.Limit)
				out = newChartOutput(ch)
			case "artists":
				var ch lastfm.Chart[lastfm.Artist]
				ch, err = c.client.User.WeeklyArtistChart(ctx, user, opts.From, opts.To, opts.Limit)
				out = newChartOutput(ch)
			case "tracks":
				var ch lastfm.Chart[lastfm.Track]
				ch, err = c.client.User.WeeklyTrackChart(ctx, user, opts.From, opts.To, opts.Limit)
				out = newChartOutput(ch)
			default:
				return fmt.Errorf("unknown kind %q: want albums, artists or tracks", opts.Kind)
			}
			if err != nil {
				return err
			}
			return c.print(cmd, out)
		},
	}
	cmd.Flags().StringVar(&opts.Kind, "kind", "artists", "One of albums, artists or tracks.")
	cmd.Flags().StringVar(&opts.From, "from", "", "Start of the week as a unix timestamp.")
	cmd.Flags().StringVar(&opts.To, "to", "", "End of the week as a unix timestamp.")
	cmd.Flags().IntVar(&opts.Limit, "limit", -1, "Number of entries.")
	return cmd
}

func userChartsCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "charts <user>",
		Short: "List the weeks a user has charts for",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ranges, err := c.client.User.WeeklyChartList(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := make([]rangeOutput, 0, len(ranges))
			for _, r := range ranges {
				out = append(out, rangeOutput{From: r.From.Unix(), To: r.To.Unix()})
			}
			return c.print(cmd, out)
		},
	}
}

type rangeOutput struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

type chartOutput[T any] struct {
	rangeOutput
	pageOutput[T]
}

func newChartOutput[T any](ch lastfm.Chart[T]) chartOutput[T] {
	out := chartOutput[T]{pageOutput: newPageOutput(ch.PaginatedResult)}
	if !ch.From.IsZero() {
		out.From = ch.From.Unix()
	}
	if !ch.To.IsZero() {
		out.To = ch.To.Unix()
	}
	return out
}
