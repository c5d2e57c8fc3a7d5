package lastfm

import (
	"fmt"

	"LastFM-Go/pkg/xmldoc"
)

// Kind selects the factory used to materialize one entity type. Kinds can only
// be created inside this package; the zero Kind is rejected with
// ErrUnsupportedKind.
type Kind[T any] struct {
	name  string
	tag   string
	build func(*xmldoc.Element) (T, error)
}

// String returns the entity name.
func (k Kind[T]) String() string {
	if k.name == "" {
		return "unsupported"
	}
	return k.name
}

// Tag is the element name items of this kind appear under.
func (k Kind[T]) Tag() string {
	return k.tag
}

func (k Kind[T]) check() error {
	if k.build == nil || k.tag == "" {
		return ErrUnsupportedKind
	}
	return nil
}

// The fixed registry of entity kinds.
var (
	UserKind     = Kind[User]{name: "user", tag: "user", build: buildUser}
	TrackKind    = Kind[Track]{name: "track", tag: "track", build: buildTrack}
	AlbumKind    = Kind[Album]{name: "album", tag: "album", build: buildAlbum}
	ArtistKind   = Kind[Artist]{name: "artist", tag: "artist", build: buildArtist}
	EventKind    = Kind[Event]{name: "event", tag: "event", build: buildEvent}
	VenueKind    = Kind[Venue]{name: "venue", tag: "venue", build: buildVenue}
	PlaylistKind = Kind[Playlist]{name: "playlist", tag: "playlist", build: buildPlaylist}
	ShoutKind    = Kind[Shout]{name: "shout", tag: "shout", build: buildShout}
	TagKind      = Kind[Tag]{name: "tag", tag: "tag", build: buildTag}
	SessionKind  = Kind[Session]{name: "session", tag: "session", build: buildSession}
)

// BuildItem materializes a single element with the factory of kind.
func BuildItem[T any](el *xmldoc.Element, kind Kind[T]) (T, error) {
	var zero T
	if err := kind.check(); err != nil {
		return zero, err
	}
	if el == nil {
		return zero, fmt.Errorf("lastfm: %s: %w", kind, ErrMalformedResponse)
	}
	return kind.build(el)
}

// BuildResultItem materializes the content node of a single-item response. A
// failed Result yields its remote error.
func BuildResultItem[T any](res *Result, kind Kind[T]) (T, error) {
	var zero T
	if err := kind.check(); err != nil {
		return zero, err
	}
	if !res.Successful() {
		if err := res.Err(); err != nil {
			return zero, err
		}
		return zero, ErrMalformedResponse
	}
	return BuildItem(res.Content(), kind)
}

// BuildCollection materializes every item of a collection response in
// document order. A failed Result yields an empty slice. An item with a
// missing required field aborts the build.
func BuildCollection[T any](res *Result, kind Kind[T]) ([]T, error) {
	if err := kind.check(); err != nil {
		return nil, err
	}
	if !res.Successful() {
		return []T{}, nil
	}
	return buildItems(collectionNodes(res.Content(), kind.tag), kind)
}

// BuildPaginatedResult materializes one page of a collection and its
// pagination attributes. A failed Result yields page 0 of 0 with no items and
// the Result attached.
func BuildPaginatedResult[T any](res *Result, kind Kind[T]) (PaginatedResult[T], error) {
	if err := kind.check(); err != nil {
		return PaginatedResult[T]{Result: res}, err
	}
	if !res.Successful() {
		return failedPage[T](res), nil
	}
	content := res.Content()
	items, err := buildItems(collectionNodes(content, kind.tag), kind)
	if err != nil {
		return failedPage[T](res), err
	}
	p := readPagination(content)
	return PaginatedResult[T]{
		Items:      items,
		Page:       p.page,
		TotalPages: p.totalPages,
		PerPage:    p.perPage,
		Total:      p.total,
		Result:     res,
	}, nil
}

// BuildChart materializes a chart response: a paginated collection whose
// content node carries from and to unix timestamps.
func BuildChart[T any](res *Result, kind Kind[T]) (Chart[T], error) {
	page, err := BuildPaginatedResult(res, kind)
	if err != nil || !res.Successful() {
		return Chart[T]{PaginatedResult: page}, err
	}
	content := res.Content()
	return Chart[T]{
		PaginatedResult: page,
		From:            unixTime(content.AttrValue("from")),
		To:              unixTime(content.AttrValue("to")),
	}, nil
}

// BuildChartList reads the <chart from=".." to=".."/> entries of a weekly
// chart list. A failed Result yields an empty slice.
func BuildChartList(res *Result) []ChartRange {
	out := []ChartRange{}
	if !res.Successful() {
		return out
	}
	for _, c := range res.Content().ChildrenNamed("chart") {
		out = append(out, ChartRange{
			From: unixTime(c.AttrValue("from")),
			To:   unixTime(c.AttrValue("to")),
		})
	}
	return out
}

func buildItems[T any](nodes []*xmldoc.Element, kind Kind[T]) ([]T, error) {
	out := make([]T, 0, len(nodes))
	for _, n := range nodes {
		item, err := kind.build(n)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// collectionNodes returns the children of content named tag. When there are
// none, the first child that itself holds such children is used as a wrapper
// (<artists> inside <taggings>, <trackmatches> inside <results>).
func collectionNodes(content *xmldoc.Element, tag string) []*xmldoc.Element {
	if nodes := content.ChildrenNamed(tag); len(nodes) > 0 {
		return nodes
	}
	for _, c := range content.Children() {
		if nodes := c.ChildrenNamed(tag); len(nodes) > 0 {
			return nodes
		}
	}
	return nil
}

// pageInfo holds the pagination attributes of a collection response.
type pageInfo struct {
	page       int
	totalPages int
	perPage    int
	total      int
}

// readPagination finds the pagination attributes on content or on its first
// child carrying a page attribute, falling back to OpenSearch children. A
// successful response always reports at least page 1; a missing page count
// is taken to mean the current page is the last.
func readPagination(content *xmldoc.Element) pageInfo {
	src := content
	if !src.HasAttr("page") {
		for _, c := range content.Children() {
			if c.HasAttr("page") {
				src = c
				break
			}
		}
	}

	p := pageInfo{totalPages: -1}
	switch {
	case src.HasAttr("page"):
		p.page = intOr(src.AttrValue("page"), 1)
		total, ok := src.Attr("totalPages")
		if !ok {
			total = src.AttrValue("totalpages")
		}
		p.totalPages = intOr(total, -1)
		p.perPage = intOr(src.AttrValue("perPage"), 0)
		p.total = intOr(src.AttrValue("total"), 0)
	case content.HasChild("totalResults"):
		p.total = childInt(content, "totalResults", 0)
		p.perPage = childInt(content, "itemsPerPage", 0)
		start := childInt(content, "startIndex", 0)
		if p.perPage > 0 {
			p.page = start/p.perPage + 1
			p.totalPages = (p.total + p.perPage - 1) / p.perPage
		}
	}

	if p.page < 1 {
		p.page = 1
	}
	if p.totalPages < 0 {
		p.totalPages = p.page
	}
	return p
}
