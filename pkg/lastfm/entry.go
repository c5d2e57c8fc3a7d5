package lastfm

import (
	"time"

	"LastFM-Go/pkg/xmldoc"
)

// Wiki is the editorial text attached to artists (as bio), albums, tracks and
// tags.
type Wiki struct {
	Summary   string
	Content   string
	Published time.Time
}

// MusicEntry holds the fields shared by artists, albums and tracks.
type MusicEntry struct {
	ID            string
	Name          string
	URL           string
	MBID          string
	Playcount     int
	UserPlaycount int
	Listeners     int
	Streamable    bool
	// FullTrackAvailable is the fulltrack attribute of <streamable>.
	FullTrackAvailable bool
	Tags               []string
	Wiki               *Wiki
	Images             Images
}

// ImageURL returns the entry's image of the given size, falling back to medium.
func (m MusicEntry) ImageURL(size ImageSize) string {
	return m.Images.URL(size)
}

// loadMusicEntry fills the shared fields. Counts may be direct children or
// nested in <stats> depending on the method.
func loadMusicEntry(m *MusicEntry, el *xmldoc.Element) {
	m.ID = el.ChildText("id")
	m.Name = el.ChildText("name")
	m.URL = el.ChildText("url")
	m.MBID = el.ChildText("mbid")

	stats := el.Child("stats")
	m.Playcount = childInt(el, "playcount", childInt(stats, "playcount", 0))
	m.Listeners = childInt(el, "listeners", childInt(stats, "listeners", 0))
	m.UserPlaycount = childInt(el, "userplaycount", childInt(stats, "userplaycount", 0))

	if s := el.Child("streamable"); s != nil {
		m.Streamable = flag(s.Text())
		m.FullTrackAvailable = flag(s.AttrValue("fulltrack"))
	}

	if tags := el.Child("toptags"); tags != nil {
		m.Tags = textsOf(tags, "tag")
	} else if tags := el.Child("tags"); tags != nil {
		m.Tags = textsOf(tags, "tag")
	}

	m.Wiki = loadWiki(el)
	m.Images = loadImages(el)
}

func loadWiki(el *xmldoc.Element) *Wiki {
	w := el.Child("wiki")
	if w == nil {
		w = el.Child("bio")
	}
	if w == nil {
		return nil
	}
	return &Wiki{
		Summary:   w.ChildText("summary"),
		Content:   w.ChildText("content"),
		Published: parseDate(w.ChildText("published")),
	}
}
