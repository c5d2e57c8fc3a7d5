package lastfm

import (
	"time"

	"LastFM-Go/pkg/xmldoc"
)

// Track is a song as returned by charts, recent tracks, loved tracks and
// playlists.
type Track struct {
	MusicEntry
	Artist     string
	ArtistMBID string
	Album      string
	AlbumMBID  string
	// Position is the track's position on its album, when known.
	Position int
	// Duration is reported verbatim: seconds in most lists, milliseconds
	// in track.getInfo.
	Duration   int
	Rank       int
	Location   string
	NowPlaying bool
	Loved      bool
	PlayedWhen time.Time
}

func buildTrack(el *xmldoc.Element) (Track, error) {
	var t Track
	loadMusicEntry(&t.MusicEntry, el)
	// XSPF playlist tracks use title/creator instead of name/artist.
	if t.Name == "" {
		t.Name = el.ChildText("title")
	}
	if t.Name == "" {
		return Track{}, &FieldError{Kind: "track", Field: "name"}
	}

	if a := el.Child("artist"); a != nil {
		t.Artist = textOrName(a)
		t.ArtistMBID = a.AttrValue("mbid")
		if a.HasChild("mbid") {
			t.ArtistMBID = a.ChildText("mbid")
		}
	} else {
		t.Artist = el.ChildText("creator")
	}

	if a := el.Child("album"); a != nil {
		t.Album = a.Text()
		if a.HasChild("title") {
			t.Album = a.ChildText("title")
		}
		t.AlbumMBID = a.AttrValue("mbid")
		if a.HasChild("mbid") {
			t.AlbumMBID = a.ChildText("mbid")
		}
		t.Position = intOr(a.AttrValue("position"), 0)
	}

	t.Duration = childInt(el, "duration", 0)
	t.Rank = intOr(el.AttrValue("rank"), 0)
	t.Location = el.ChildText("location")
	t.NowPlaying = flag(el.AttrValue("nowplaying"))
	t.Loved = flag(el.ChildText("loved"))
	t.PlayedWhen = elementTime(el.Child("date"))
	return t, nil
}
