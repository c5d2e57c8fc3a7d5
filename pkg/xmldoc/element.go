// Package xmldoc provides a minimal, schema independent element tree used as
// the intermediate representation of web service responses. Trees are built
// once by Parse and never modified afterwards; accessors hand out copies so a
// parsed document can be shared between goroutines.
package xmldoc

// Attr is a single name/value attribute pair. Names are stored without their
// namespace prefix.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of a parsed document.
type Element struct {
	name     string
	text     string
	attrs    []Attr
	children []*Element
}

// Name returns the local element name.
func (e *Element) Name() string {
	if e == nil {
		return ""
	}
	return e.name
}

// Text returns the trimmed character data directly contained in the element.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	return e.text
}

// Attrs returns the attributes in document order.
func (e *Element) Attrs() []Attr {
	if e == nil || len(e.attrs) == 0 {
		return nil
	}
	out := make([]Attr, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// Attr looks up an attribute by name. The boolean reports whether it was
// present at all, which lets callers tell an empty value from a missing one.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrValue returns the named attribute or the empty string.
func (e *Element) AttrValue(name string) string {
	v, _ := e.Attr(name)
	return v
}

// HasAttr reports whether the element carries the named attribute.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// Children returns all child elements in document order.
func (e *Element) Children() []*Element {
	if e == nil || len(e.children) == 0 {
		return nil
	}
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// Child returns the first child with the given name or nil. The nil result is
// safe to call accessors on.
func (e *Element) Child(name string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every child with the given name in document order.
func (e *Element) ChildrenNamed(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// HasChild reports whether a child with the given name exists.
func (e *Element) HasChild(name string) bool {
	return e.Child(name) != nil
}

// ChildText returns the text of the first child with the given name, or the
// empty string when there is no such child.
func (e *Element) ChildText(name string) string {
	return e.Child(name).Text()
}

// FirstChild returns the first child element regardless of its name.
func (e *Element) FirstChild() *Element {
	if e == nil || len(e.children) == 0 {
		return nil
	}
	return e.children[0]
}
