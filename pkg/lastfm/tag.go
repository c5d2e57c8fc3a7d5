package lastfm

import "LastFM-Go/pkg/xmldoc"

// Tag is a user-applied label.
type Tag struct {
	Name  string
	URL   string
	Count int
	// Reach and Taggings come from tag.getInfo only.
	Reach      int
	Taggings   int
	Streamable bool
	Wiki       *Wiki
}

func buildTag(el *xmldoc.Element) (Tag, error) {
	name, err := requireText(el, "tag", "name")
	if err != nil {
		return Tag{}, err
	}
	return Tag{
		Name:       name,
		URL:        el.ChildText("url"),
		Count:      childInt(el, "count", 0),
		Reach:      childInt(el, "reach", 0),
		Taggings:   childInt(el, "taggings", 0),
		Streamable: flag(el.ChildText("streamable")),
		Wiki:       loadWiki(el),
	}, nil
}
