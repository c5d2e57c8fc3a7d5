package lastfm

import (
	"time"

	"LastFM-Go/pkg/xmldoc"
)

// Playlist is a user playlist. Tracks are only present when the response
// embeds an XSPF tracklist.
type Playlist struct {
	ID          string
	Title       string
	Description string
	URL         string
	Size        int
	Duration    int
	Streamable  bool
	Creator     string
	Created     time.Time
	Tracks      []Track
	Images      Images
}

func buildPlaylist(el *xmldoc.Element) (Playlist, error) {
	id, err := requireText(el, "playlist", "id")
	if err != nil {
		return Playlist{}, err
	}
	p := Playlist{
		ID:          id,
		Title:       el.ChildText("title"),
		Description: el.ChildText("description"),
		URL:         el.ChildText("url"),
		Size:        childInt(el, "size", 0),
		Duration:    childInt(el, "duration", 0),
		Streamable:  flag(el.ChildText("streamable")),
		Creator:     el.ChildText("creator"),
		Created:     parseDate(el.ChildText("date")),
		Images:      loadImages(el),
	}
	if list := el.Child("trackList"); list != nil {
		for _, t := range list.ChildrenNamed("track") {
			track, err := buildTrack(t)
			if err != nil {
				return Playlist{}, err
			}
			p.Tracks = append(p.Tracks, track)
		}
	}
	return p, nil
}
