package lastfm

import (
	"time"

	"LastFM-Go/pkg/xmldoc"
)

// User is a Last.fm profile. Fields the service did not send keep their
// defaults: Age is -1, counts are 0 and Subscriber is false.
type User struct {
	ID           string
	Name         string
	RealName     string
	URL          string
	Language     string
	Country      string
	Age          int
	Gender       string
	Type         string
	Subscriber   bool
	NumPlaylists int
	Playcount    int
	Registered   time.Time
	Images       Images
}

// ImageURL returns the avatar of the given size, falling back to medium.
func (u User) ImageURL(size ImageSize) string {
	return u.Images.URL(size)
}

func buildUser(el *xmldoc.Element) (User, error) {
	name, err := requireText(el, "user", "name")
	if err != nil {
		return User{}, err
	}
	u := User{
		ID:         el.ChildText("id"),
		Name:       name,
		RealName:   el.ChildText("realname"),
		URL:        el.ChildText("url"),
		Language:   el.ChildText("lang"),
		Country:    el.ChildText("country"),
		Gender:     el.ChildText("gender"),
		Type:       el.ChildText("type"),
		Subscriber: flag(el.ChildText("subscriber")),
		// age, playcount and playlists only come with extended profiles.
		Age:          childInt(el, "age", -1),
		Playcount:    childInt(el, "playcount", 0),
		NumPlaylists: childInt(el, "playlists", 0),
		Registered:   elementTime(el.Child("registered")),
		Images:       loadImages(el),
	}
	return u, nil
}

// requireText returns the text of a required child, failing with a
// *FieldError when the child is absent or empty.
func requireText(el *xmldoc.Element, kind, field string) (string, error) {
	v := el.ChildText(field)
	if v == "" {
		return "", &FieldError{Kind: kind, Field: field}
	}
	return v, nil
}
