package lastfm

import "LastFM-Go/pkg/xmldoc"

// Artist is a performer. Similar is only filled by responses that embed a
// <similar> list.
type Artist struct {
	MusicEntry
	Rank    int
	Match   float64
	OnTour  bool
	Similar []Artist
}

func buildArtist(el *xmldoc.Element) (Artist, error) {
	var a Artist
	loadMusicEntry(&a.MusicEntry, el)
	if a.Name == "" {
		// <artist>Name</artist> as used in weekly charts of some methods.
		a.Name = el.Text()
	}
	if a.Name == "" {
		return Artist{}, &FieldError{Kind: "artist", Field: "name"}
	}
	a.Rank = intOr(el.AttrValue("rank"), 0)
	a.Match = childFloat(el, "match", 0)
	a.OnTour = flag(el.ChildText("ontour"))

	if similar := el.Child("similar"); similar != nil {
		for _, s := range similar.ChildrenNamed("artist") {
			sa, err := buildArtist(s)
			if err != nil {
				return Artist{}, err
			}
			a.Similar = append(a.Similar, sa)
		}
	}
	return a, nil
}
