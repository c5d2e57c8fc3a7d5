package lastfm

import (
	"time"

	"LastFM-Go/pkg/xmldoc"
)

// Event is a concert or festival.
type Event struct {
	ID          string
	Title       string
	Headliner   string
	Artists     []string
	Venue       *Venue
	Start       time.Time
	End         time.Time
	Description string
	URL         string
	Website     string
	Attendance  int
	Reviews     int
	Cancelled   bool
	Festival    bool
	Tags        []string
	Images      Images
}

// Venue is the place an event happens at.
type Venue struct {
	ID        string
	Name      string
	URL       string
	Website   string
	Phone     string
	City      string
	Country   string
	Street    string
	Postal    string
	Latitude  float64
	Longitude float64
	Images    Images
}

func buildEvent(el *xmldoc.Element) (Event, error) {
	id, err := requireText(el, "event", "id")
	if err != nil {
		return Event{}, err
	}
	e := Event{
		ID:          id,
		Title:       el.ChildText("title"),
		Description: el.ChildText("description"),
		URL:         el.ChildText("url"),
		Website:     el.ChildText("website"),
		Attendance:  childInt(el, "attendance", 0),
		Reviews:     childInt(el, "reviews", 0),
		Cancelled:   flag(el.ChildText("cancelled")),
		Start:       parseDate(el.ChildText("startDate")),
		End:         parseDate(el.ChildText("endDate")),
		Images:      loadImages(el),
	}
	if artists := el.Child("artists"); artists != nil {
		e.Headliner = artists.ChildText("headliner")
		e.Artists = textsOf(artists, "artist")
	}
	if tags := el.Child("tags"); tags != nil {
		e.Tags = textsOf(tags, "tag")
	}
	e.Festival = el.HasChild("festival") || flag(el.AttrValue("festival"))
	if v := el.Child("venue"); v != nil {
		venue, err := buildVenue(v)
		if err != nil {
			return Event{}, err
		}
		e.Venue = &venue
	}
	return e, nil
}

func buildVenue(el *xmldoc.Element) (Venue, error) {
	name, err := requireText(el, "venue", "name")
	if err != nil {
		return Venue{}, err
	}
	v := Venue{
		ID:      el.ChildText("id"),
		Name:    name,
		URL:     el.ChildText("url"),
		Website: el.ChildText("website"),
		Phone:   el.ChildText("phonenumber"),
		Images:  loadImages(el),
	}
	if loc := el.Child("location"); loc != nil {
		v.City = loc.ChildText("city")
		v.Country = loc.ChildText("country")
		v.Street = loc.ChildText("street")
		v.Postal = loc.ChildText("postalcode")
		// <geo:point> parses to the local name "point".
		if p := loc.Child("point"); p != nil {
			v.Latitude = childFloat(p, "lat", 0)
			v.Longitude = childFloat(p, "long", 0)
		}
	}
	return v, nil
}
