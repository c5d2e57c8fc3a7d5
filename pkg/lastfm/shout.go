package lastfm

import (
	"time"

	"LastFM-Go/pkg/xmldoc"
)

// Shout is a message left on a profile page.
type Shout struct {
	Body   string
	Author string
	Date   time.Time
}

func buildShout(el *xmldoc.Element) (Shout, error) {
	body, err := requireText(el, "shout", "body")
	if err != nil {
		return Shout{}, err
	}
	return Shout{
		Body:   body,
		Author: el.ChildText("author"),
		Date:   parseDate(el.ChildText("date")),
	}, nil
}
