package lastfm

import (
	"time"

	"LastFM-Go/pkg/xmldoc"
)

// Album is a release by an artist.
type Album struct {
	MusicEntry
	Artist      string
	ReleaseDate time.Time
	Rank        int
	Tracks      []Track
}

func buildAlbum(el *xmldoc.Element) (Album, error) {
	var a Album
	loadMusicEntry(&a.MusicEntry, el)
	if a.Name == "" {
		a.Name = el.ChildText("title")
	}
	if a.Name == "" {
		return Album{}, &FieldError{Kind: "album", Field: "name"}
	}
	if artist := el.Child("artist"); artist != nil {
		a.Artist = textOrName(artist)
	}
	a.ReleaseDate = parseDate(el.ChildText("releasedate"))
	a.Rank = intOr(el.AttrValue("rank"), 0)

	if tracks := el.Child("tracks"); tracks != nil {
		for _, t := range tracks.ChildrenNamed("track") {
			track, err := buildTrack(t)
			if err != nil {
				return Album{}, err
			}
			a.Tracks = append(a.Tracks, track)
		}
	}
	return a, nil
}
