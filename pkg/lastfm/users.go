package lastfm

import (
	"context"
	"strconv"
)

// UserService binds the user.* methods. Integer arguments documented as
// optional are left out of the request when -1.
type UserService struct {
	client *Client
}

// Info returns the public profile of user.
func (s *UserService) Info(ctx context.Context, user string) (User, error) {
	return callItem(ctx, s.client.caller, "user.getInfo", s.client.key(), params{"user": user}, UserKind)
}

// SessionInfo returns the extended profile of the session's user.
func (s *UserService) SessionInfo(ctx context.Context, session *Session) (User, error) {
	return callItem(ctx, s.client.caller, "user.getInfo", session, params{}, UserKind)
}

// ArtistTracks lists the scrobbles of one artist by user. start and end are
// unix timestamps and are left out when not positive.
func (s *UserService) ArtistTracks(ctx context.Context, user, artist string, page int, start, end int64) (PaginatedResult[Track], error) {
	p := params{"user": user, "artist": artist}
	p.setInt("page", page)
	if start > 0 {
		p["startTimestamp"] = strconv.FormatInt(start, 10)
	}
	if end > 0 {
		p["endTimestamp"] = strconv.FormatInt(end, 10)
	}
	return callPage(ctx, s.client.caller, "user.getArtistTracks", s.client.key(), p, TrackKind)
}

// Friends lists user's friends, optionally with the track each played last.
func (s *UserService) Friends(ctx context.Context, user string, recentTracks bool, page, limit int) (PaginatedResult[User], error) {
	p := params{"user": user, "recenttracks": strconv.FormatBool(recentTracks)}
	p.setInt("page", page)
	p.setInt("limit", limit)
	return callPage(ctx, s.client.caller, "user.getFriends", s.client.key(), p, UserKind)
}

// Neighbours lists users with a similar taste.
func (s *UserService) Neighbours(ctx context.Context, user string, limit int) ([]User, error) {
	p := params{"user": user}
	p.setInt("limit", limit)
	return callCollection(ctx, s.client.caller, "user.getNeighbours", s.client.key(), p, UserKind)
}

// RecentTracks lists user's scrobbles, newest first. The track being played
// now, if any, is first and has NowPlaying set.
func (s *UserService) RecentTracks(ctx context.Context, user string, page, limit int, extended bool) (PaginatedResult[Track], error) {
	p := params{"user": user}
	p.setInt("page", page)
	p.setInt("limit", limit)
	p.setFlag("extended", extended)
	return callPage(ctx, s.client.caller, "user.getRecentTracks", s.client.key(), p, TrackKind)
}

// TopAlbums lists user's most played albums over period.
func (s *UserService) TopAlbums(ctx context.Context, user string, period Period, limit int) ([]Album, error) {
	return callCollection(ctx, s.client.caller, "user.getTopAlbums", s.client.key(), topParams(user, period, limit), AlbumKind)
}

// TopArtists lists user's most played artists over period.
func (s *UserService) TopArtists(ctx context.Context, user string, period Period, limit int) ([]Artist, error) {
	return callCollection(ctx, s.client.caller, "user.getTopArtists", s.client.key(), topParams(user, period, limit), ArtistKind)
}

// TopTracks lists user's most played tracks over period.
func (s *UserService) TopTracks(ctx context.Context, user string, period Period, limit int) ([]Track, error) {
	return callCollection(ctx, s.client.caller, "user.getTopTracks", s.client.key(), topParams(user, period, limit), TrackKind)
}

// TopTags lists the tags user applied most.
func (s *UserService) TopTags(ctx context.Context, user string, limit int) ([]Tag, error) {
	p := params{"user": user}
	p.setInt("limit", limit)
	return callCollection(ctx, s.client.caller, "user.getTopTags", s.client.key(), p, TagKind)
}

func topParams(user string, period Period, limit int) params {
	if period == "" {
		period = PeriodOverall
	}
	p := params{"user": user, "period": string(period)}
	p.setInt("limit", limit)
	return p
}

// WeeklyAlbumChart returns the album chart for the week between from and to,
// given as unix timestamps from WeeklyChartList. Empty bounds select the
// latest week.
func (s *UserService) WeeklyAlbumChart(ctx context.Context, user, from, to string, limit int) (Chart[Album], error) {
	return callChart(ctx, s.client.caller, "user.getWeeklyAlbumChart", s.client.key(), chartParams(user, from, to, limit), AlbumKind)
}

// WeeklyArtistChart is WeeklyAlbumChart for artists.
func (s *UserService) WeeklyArtistChart(ctx context.Context, user, from, to string, limit int) (Chart[Artist], error) {
	return callChart(ctx, s.client.caller, "user.getWeeklyArtistChart", s.client.key(), chartParams(user, from, to, limit), ArtistKind)
}

// WeeklyTrackChart is WeeklyAlbumChart for tracks.
func (s *UserService) WeeklyTrackChart(ctx context.Context, user, from, to string, limit int) (Chart[Track], error) {
	return callChart(ctx, s.client.caller, "user.getWeeklyTrackChart", s.client.key(), chartParams(user, from, to, limit), TrackKind)
}

func chartParams(user, from, to string, limit int) params {
	p := params{"user": user}
	p.setString("from", from)
	p.setString("to", to)
	p.setInt("limit", limit)
	return p
}

// WeeklyChartList returns the weeks for which charts of user exist, oldest
// first.
func (s *UserService) WeeklyChartList(ctx context.Context, user string) ([]ChartRange, error) {
	res, err := s.client.caller.Call(ctx, "user.getWeeklyChartList", s.client.key(), params{"user": user})
	if err != nil {
		return []ChartRange{}, err
	}
	return BuildChartList(res), nil
}

// Events lists upcoming events user is attending.
func (s *UserService) Events(ctx context.Context, user string, festivalsOnly bool, page, limit int) (PaginatedResult[Event], error) {
	p := params{"user": user}
	p.setInt("page", page)
	p.setInt("limit", limit)
	p.setFlag("festivalsonly", festivalsOnly)
	return callPage(ctx, s.client.caller, "user.getEvents", s.client.key(), p, EventKind)
}

// PastEvents lists events user attended.
func (s *UserService) PastEvents(ctx context.Context, user string, page, limit int) (PaginatedResult[Event], error) {
	p := params{"user": user}
	p.setInt("page", page)
	p.setInt("limit", limit)
	return callPage(ctx, s.client.caller, "user.getPastEvents", s.client.key(), p, EventKind)
}

// RecommendedEvents lists events recommended to the session's user.
func (s *UserService) RecommendedEvents(ctx context.Context, session *Session, page int) (PaginatedResult[Event], error) {
	if session == nil {
		return PaginatedResult[Event]{Items: []Event{}}, ErrNoCredentials
	}
	p := params{"user": session.Username}
	p.setInt("page", page)
	return callPage(ctx, s.client.caller, "user.getRecommendedEvents", session, p, EventKind)
}

// Playlists lists playlist metadata of user. Tracks are not included.
func (s *UserService) Playlists(ctx context.Context, user string) ([]Playlist, error) {
	return callCollection(ctx, s.client.caller, "user.getPlaylists", s.client.key(), params{"user": user}, PlaylistKind)
}

// LovedTracks lists tracks user marked as loved.
func (s *UserService) LovedTracks(ctx context.Context, user string, page, limit int) (PaginatedResult[Track], error) {
	p := params{"user": user}
	p.setInt("page", page)
	p.setInt("limit", limit)
	return callPage(ctx, s.client.caller, "user.getLovedTracks", s.client.key(), p, TrackKind)
}

// BannedTracks lists tracks user banned.
func (s *UserService) BannedTracks(ctx context.Context, user string, page int) (PaginatedResult[Track], error) {
	p := params{"user": user}
	p.setInt("page", page)
	return callPage(ctx, s.client.caller, "user.getBannedTracks", s.client.key(), p, TrackKind)
}

// RecommendedArtists lists artists recommended to the session's user.
func (s *UserService) RecommendedArtists(ctx context.Context, session *Session, page int) (PaginatedResult[Artist], error) {
	p := params{}
	p.setInt("page", page)
	return callPage(ctx, s.client.caller, "user.getRecommendedArtists", session, p, ArtistKind)
}

// Shout posts message on user's shoutbox. The Result is returned as is.
func (s *UserService) Shout(ctx context.Context, session *Session, user, message string) (*Result, error) {
	return s.client.caller.Call(ctx, "user.shout", session, params{"user": user, "message": message})
}

// Shouts lists the messages on user's shoutbox.
func (s *UserService) Shouts(ctx context.Context, user string, page, limit int) (PaginatedResult[Shout], error) {
	p := params{"user": user}
	p.setInt("page", page)
	p.setInt("limit", limit)
	return callPage(ctx, s.client.caller, "user.getShouts", s.client.key(), p, ShoutKind)
}

// NewReleases lists upcoming releases by artists in user's library, or by
// recommended artists when useRecommendations is set.
func (s *UserService) NewReleases(ctx context.Context, user string, useRecommendations bool) ([]Album, error) {
	p := params{"user": user, "userecs": "0"}
	if useRecommendations {
		p["userecs"] = "1"
	}
	return callCollection(ctx, s.client.caller, "user.getNewReleases", s.client.key(), p, AlbumKind)
}

// PersonalTaggedArtists lists the artists user tagged with tag.
func (s *UserService) PersonalTaggedArtists(ctx context.Context, user, tag string, page, limit int) (PaginatedResult[Artist], error) {
	return callPage(ctx, s.client.caller, "user.getPersonalTags", s.client.key(), personalTagParams(user, tag, ArtistKind.tag, page, limit), ArtistKind)
}

// PersonalTaggedAlbums lists the albums user tagged with tag.
func (s *UserService) PersonalTaggedAlbums(ctx context.Context, user, tag string, page, limit int) (PaginatedResult[Album], error) {
	return callPage(ctx, s.client.caller, "user.getPersonalTags", s.client.key(), personalTagParams(user, tag, AlbumKind.tag, page, limit), AlbumKind)
}

// PersonalTaggedTracks lists the tracks user tagged with tag.
func (s *UserService) PersonalTaggedTracks(ctx context.Context, user, tag string, page, limit int) (PaginatedResult[Track], error) {
	return callPage(ctx, s.client.caller, "user.getPersonalTags", s.client.key(), personalTagParams(user, tag, TrackKind.tag, page, limit), TrackKind)
}

func personalTagParams(user, tag, taggingType string, page, limit int) params {
	p := params{"user": user, "tag": tag, "taggingtype": taggingType}
	p.setInt("page", page)
	p.setInt("limit", limit)
	return p
}
