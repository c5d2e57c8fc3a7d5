package xmldoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// MaxDocumentSize bounds how much of a payload Parse will read.
const MaxDocumentSize = 16 << 20

// ErrEmptyDocument is returned when the input holds no root element.
var ErrEmptyDocument = errors.New("xmldoc: no root element")

// Parse reads a single XML document and returns its root element. Parsing is
// single pass and top down. Declared encodings other than UTF-8 are decoded
// through the x/net charset tables. Entity expansion is disabled.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(io.LimitReader(r, MaxDocumentSize))
	dec.Strict = true
	dec.Entity = map[string]string{}
	dec.CharsetReader = charset.NewReaderLabel

	var (
		root  *Element
		stack []*Element
		texts []*strings.Builder
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xmldoc: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, fmt.Errorf("xmldoc: multiple root elements (%s)", t.Name.Local)
			}
			el := &Element{name: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
					continue
				}
				el.attrs = append(el.attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			} else {
				root = el
			}
			stack = append(stack, el)
			texts = append(texts, &strings.Builder{})
		case xml.EndElement:
			// The strict decoder guarantees balanced tags.
			el := stack[len(stack)-1]
			el.text = strings.TrimSpace(texts[len(texts)-1].String())
			stack = stack[:len(stack)-1]
			texts = texts[:len(texts)-1]
		case xml.CharData:
			if len(texts) > 0 {
				texts[len(texts)-1].Write(t)
			}
		}
	}
	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

// ParseBytes is a convenience wrapper around Parse.
func ParseBytes(b []byte) (*Element, error) {
	return Parse(bytes.NewReader(b))
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Element, error) {
	return Parse(strings.NewReader(s))
}
