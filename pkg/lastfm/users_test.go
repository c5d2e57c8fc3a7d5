package lastfm

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserInfo(t *testing.T) {
	c, transport := newTestClient(http.StatusOK, okUser)

	u, err := c.User.Info(context.Background(), "RJ")
	require.NoError(t, err)
	assert.Equal(t, "RJ", u.Name)
	assert.Equal(t, -1, u.Age)

	method, v := transport.last()
	assert.Equal(t, http.MethodGet, method)
	assert.Equal(t, "user.getInfo", v.Get("method"))
	assert.Equal(t, "RJ", v.Get("user"))
}

func TestUserInfoNotFound(t *testing.T) {
	c, _ := newTestClient(http.StatusOK, userNotFound)

	_, err := c.User.Info(context.Background(), "nobody")
	assert.True(t, IsCode(err, CodeInvalidParameters))
}

func TestUserSessionInfoSigned(t *testing.T) {
	c, transport := newTestClient(http.StatusOK, okUser)

	_, err := c.User.SessionInfo(context.Background(), c.Session("SK", "RJ"))
	require.NoError(t, err)

	method, v := transport.last()
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "SK", v.Get("sk"))
	assert.NotEmpty(t, v.Get("api_sig"))
	assert.Empty(t, v.Get("user"))
}

func TestRecentTracksParams(t *testing.T) {
	c, transport := newTestClient(http.StatusOK, recentTracks)

	page, err := c.User.RecentTracks(context.Background(), "RJ", -1, 10, true)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Items, 2)

	_, v := transport.last()
	assert.Equal(t, "10", v.Get("limit"))
	assert.Equal(t, "1", v.Get("extended"))
	assert.NotContains(t, v, "page")
}

func TestRecentTracksPrivateProfile(t *testing.T) {
	body := `<lfm status="failed"><error code="4">Authentication Failed - This user's recent tracks are private</error></lfm>`
	c, _ := newTestClient(http.StatusOK, body)

	page, err := c.User.RecentTracks(context.Background(), "private", 1, 50, false)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeAuthenticationFailed))

	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 0, page.TotalPages)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	require.NotNil(t, page.Result)
	assert.False(t, page.Result.Successful())
	assert.Contains(t, page.Result.ErrorMessage(), "private")
}

func TestRecentTracksTransportFailure(t *testing.T) {
	transport := &rt{err: errors.New("dial tcp: refused")}
	c := NewClient(newTestCaller(transport), "KEY", "")

	page, err := c.User.RecentTracks(context.Background(), "RJ", 1, 50, false)
	assert.Error(t, err)
	assert.NotNil(t, page.Items)
	assert.Nil(t, page.Result)
}

func TestTopArtistsDefaultsToOverall(t *testing.T) {
	body := `<lfm status="ok"><topartists user="RJ" type="overall">
  <artist rank="1"><name>Dream Theater</name><playcount>1337</playcount></artist>
</topartists></lfm>`
	c, transport := newTestClient(http.StatusOK, body)

	artists, err := c.User.TopArtists(context.Background(), "RJ", "", -1)
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, 1337, artists[0].Playcount)

	_, v := transport.last()
	assert.Equal(t, "user.getTopArtists", v.Get("method"))
	assert.Equal(t, "overall", v.Get("period"))
	assert.NotContains(t, v, "limit")
}

func TestTopCollectionsOnFailure(t *testing.T) {
	c, _ := newTestClient(http.StatusOK, userNotFound)
	ctx := context.Background()

	albums, err := c.User.TopAlbums(ctx, "x", PeriodSevenDays, 5)
	assert.Error(t, err)
	assert.NotNil(t, albums)
	assert.Empty(t, albums)

	tags, err := c.User.TopTags(ctx, "x", -1)
	assert.Error(t, err)
	assert.Empty(t, tags)
}

func TestWeeklyTrackChart(t *testing.T) {
	body := `<lfm status="ok"><weeklytrackchart user="RJ" from="1114965332" to="1115570132">
  <track rank="1"><artist>Blur</artist><name>Song 2</name><playcount>5</playcount></track>
</weeklytrackchart></lfm>`
	c, transport := newTestClient(http.StatusOK, body)

	chart, err := c.User.WeeklyTrackChart(context.Background(), "RJ", "1114965332", "1115570132", -1)
	require.NoError(t, err)
	assert.Equal(t, time.Unix(1115570132, 0).UTC(), chart.To)
	require.Len(t, chart.Items, 1)
	assert.Equal(t, "Blur", chart.Items[0].Artist)

	_, v := transport.last()
	assert.Equal(t, "1114965332", v.Get("from"))
	assert.Equal(t, "1115570132", v.Get("to"))
}

func TestWeeklyChartList(t *testing.T) {
	body := `<lfm status="ok"><weeklychartlist user="RJ"><chart from="1" to="2"/><chart from="2" to="3"/></weeklychartlist></lfm>`
	c, _ := newTestClient(http.StatusOK, body)

	ranges, err := c.User.WeeklyChartList(context.Background(), "RJ")
	require.NoError(t, err)
	assert.Len(t, ranges, 2)
}

func TestRecommendedArtistsRequiresSession(t *testing.T) {
	body := `<lfm status="ok"><recommendations user="RJ" page="1" totalPages="1"><artist><name>Blur</name></artist></recommendations></lfm>`
	c, transport := newTestClient(http.StatusOK, body)

	page, err := c.User.RecommendedArtists(context.Background(), c.Session("SK", "RJ"), 1)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	method, v := transport.last()
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "1", v.Get("page"))

	_, err = c.User.RecommendedEvents(context.Background(), nil, 1)
	assert.ErrorIs(t, err, ErrNoCredentials)
	_, err = c.User.RecommendedArtists(context.Background(), nil, 1)
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestPersonalTaggedAlbums(t *testing.T) {
	body := `<lfm status="ok"><taggings user="RJ" tag="rock" page="1" totalPages="1">
  <albums><album><name>Parklife</name><artist><name>Blur</name></artist></album></albums>
</taggings></lfm>`
	c, transport := newTestClient(http.StatusOK, body)

	page, err := c.User.PersonalTaggedAlbums(context.Background(), "RJ", "rock", -1, -1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Blur", page.Items[0].Artist)

	_, v := transport.last()
	assert.Equal(t, "album", v.Get("taggingtype"))
	assert.Equal(t, "rock", v.Get("tag"))
}

func TestShoutAndShouts(t *testing.T) {
	c, transport := newTestClient(http.StatusOK, `<lfm status="ok"></lfm>`)

	res, err := c.User.Shout(context.Background(), c.Session("SK", "RJ"), "Jon", "hello")
	require.NoError(t, err)
	assert.True(t, res.Successful())
	_, v := transport.last()
	assert.Equal(t, "hello", v.Get("message"))
	assert.Equal(t, "Jon", v.Get("user"))

	body := `<lfm status="ok"><shouts user="RJ" page="1" totalPages="2"><shout><body>hi</body><author>Jon</author></shout></shouts></lfm>`
	c, _ = newTestClient(http.StatusOK, body)
	page, err := c.User.Shouts(context.Background(), "RJ", -1, -1)
	require.NoError(t, err)
	assert.True(t, page.HasNext())
	assert.Equal(t, "Jon", page.Items[0].Author)
}

func TestMiscUserMethods(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		method string
		call   func(*Client) error
	}{
		{"artist tracks", "user.getArtistTracks", func(c *Client) error {
			_, err := c.User.ArtistTracks(ctx, "RJ", "Blur", 1, 100, -1)
			return err
		}},
		{"friends", "user.getFriends", func(c *Client) error {
			_, err := c.User.Friends(ctx, "RJ", true, 1, 50)
			return err
		}},
		{"neighbours", "user.getNeighbours", func(c *Client) error {
			_, err := c.User.Neighbours(ctx, "RJ", 10)
			return err
		}},
		{"events", "user.getEvents", func(c *Client) error {
			_, err := c.User.Events(ctx, "RJ", true, -1, -1)
			return err
		}},
		{"past events", "user.getPastEvents", func(c *Client) error {
			_, err := c.User.PastEvents(ctx, "RJ", 2, -1)
			return err
		}},
		{"playlists", "user.getPlaylists", func(c *Client) error {
			_, err := c.User.Playlists(ctx, "RJ")
			return err
		}},
		{"loved", "user.getLovedTracks", func(c *Client) error {
			_, err := c.User.LovedTracks(ctx, "RJ", 1, -1)
			return err
		}},
		{"banned", "user.getBannedTracks", func(c *Client) error {
			_, err := c.User.BannedTracks(ctx, "RJ", 1)
			return err
		}},
		{"new releases", "user.getNewReleases", func(c *Client) error {
			_, err := c.User.NewReleases(ctx, "RJ", true)
			return err
		}},
		{"top tracks", "user.getTopTracks", func(c *Client) error {
			_, err := c.User.TopTracks(ctx, "RJ", PeriodTwelveMonths, -1)
			return err
		}},
		{"album chart", "user.getWeeklyAlbumChart", func(c *Client) error {
			_, err := c.User.WeeklyAlbumChart(ctx, "RJ", "", "", -1)
			return err
		}},
		{"artist chart", "user.getWeeklyArtistChart", func(c *Client) error {
			_, err := c.User.WeeklyArtistChart(ctx, "RJ", "", "", 5)
			return err
		}},
		{"tagged artists", "user.getPersonalTags", func(c *Client) error {
			_, err := c.User.PersonalTaggedArtists(ctx, "RJ", "rock", -1, -1)
			return err
		}},
		{"tagged tracks", "user.getPersonalTags", func(c *Client) error {
			_, err := c.User.PersonalTaggedTracks(ctx, "RJ", "rock", -1, -1)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, transport := newTestClient(http.StatusOK, `<lfm status="ok"><empty/></lfm>`)
			require.NoError(t, tt.call(c))
			_, v := transport.last()
			assert.Equal(t, tt.method, v.Get("method"))
			assert.Equal(t, "RJ", v.Get("user"))
		})
	}
}

func TestAuthFlow(t *testing.T) {
	c, transport := newTestClient(http.StatusOK, `<lfm status="ok"><token>cf45fe5a3e3cebe168480a086d7fe481</token></lfm>`)

	token, err := c.Auth.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cf45fe5a3e3cebe168480a086d7fe481", token)
	method, v := transport.last()
	assert.Equal(t, http.MethodPost, method)
	assert.NotEmpty(t, v.Get("api_sig"))
	assert.NotContains(t, v, "sk")

	u, err := url.Parse(c.Auth.AuthURL(token))
	require.NoError(t, err)
	assert.Equal(t, "www.last.fm", u.Host)
	assert.Equal(t, "KEY", u.Query().Get("api_key"))
	assert.Equal(t, token, u.Query().Get("token"))

	c, transport = newTestClient(http.StatusOK, `<lfm status="ok"><session><name>RJ</name><key>SK1</key><subscriber>1</subscriber></session></lfm>`)
	sess, err := c.Auth.Session(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, &Session{APIKey: "KEY", Secret: "SECRET", Key: "SK1", Username: "RJ", Subscriber: true}, sess)
	_, v = transport.last()
	assert.Equal(t, token, v.Get("token"))
	assert.Equal(t, "auth.getSession", v.Get("method"))
}

func TestAuthWithoutSecret(t *testing.T) {
	transport := &rt{status: http.StatusOK, body: okUser}
	c := NewClient(newTestCaller(transport), "KEY", "")

	_, err := c.Auth.Token(context.Background())
	assert.ErrorIs(t, err, ErrNoCredentials)
	assert.Zero(t, transport.calls())
}

func TestAuthTokenEmpty(t *testing.T) {
	c, _ := newTestClient(http.StatusOK, `<lfm status="ok"><token/></lfm>`)
	_, err := c.Auth.Token(context.Background())
	assert.ErrorIs(t, err, ErrMalformedResponse)
}
