package lastfm

import (
	"strconv"

	"LastFM-Go/pkg/xmldoc"
)

// Response status values carried on the <lfm> root.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Result is the envelope of one call. On success Content returns the node
// carrying the requested data; on failure ErrorCode and ErrorMessage hold what
// the service declared.
type Result struct {
	status       string
	errorCode    int
	errorMessage string
	httpStatus   int
	doc          *xmldoc.Element
}

// Successful reports whether the service answered with status ok. A nil
// Result is never successful.
func (r *Result) Successful() bool {
	return r != nil && r.status == StatusOK
}

// Status returns "ok" or "failed".
func (r *Result) Status() string {
	if r == nil {
		return ""
	}
	return r.status
}

// ErrorCode returns the remote error code, or 0 for successful results.
func (r *Result) ErrorCode() int {
	if r == nil {
		return 0
	}
	return r.errorCode
}

// ErrorMessage returns the remote error text, or "" for successful results.
func (r *Result) ErrorMessage() string {
	if r == nil {
		return ""
	}
	return r.errorMessage
}

// HTTPStatus is the transport status code the response arrived with.
func (r *Result) HTTPStatus() int {
	if r == nil {
		return 0
	}
	return r.httpStatus
}

// Document returns the parsed root element.
func (r *Result) Document() *xmldoc.Element {
	if r == nil {
		return nil
	}
	return r.doc
}

// Content returns the node holding the response data: the first child of the
// <lfm> root, or the root itself when it has no children or is not an <lfm>
// envelope. Failed results have no content.
func (r *Result) Content() *xmldoc.Element {
	if !r.Successful() || r.doc == nil {
		return nil
	}
	if r.doc.Name() == "lfm" {
		if c := r.doc.FirstChild(); c != nil {
			return c
		}
	}
	return r.doc
}

// Err returns the remote failure as an *Error, or nil on success.
func (r *Result) Err() error {
	if r == nil || r.Successful() {
		return nil
	}
	return &Error{Code: r.errorCode, Message: r.errorMessage}
}

// NewResult classifies a parsed document. It is exported so callers holding a
// payload from elsewhere (fixtures, recorded traffic) can materialize it.
func NewResult(doc *xmldoc.Element) (*Result, error) {
	return classify(doc, 0)
}

func classify(doc *xmldoc.Element, httpStatus int) (*Result, error) {
	if doc == nil {
		return nil, ErrMalformedResponse
	}
	res := &Result{doc: doc, httpStatus: httpStatus}

	status, hasStatus := doc.Attr("status")
	errEl := doc.Child("error")
	if doc.Name() == "error" {
		errEl = doc
	}
	failed := status == StatusFailed || (!hasStatus && errEl != nil)
	if !failed {
		res.status = StatusOK
		return res, nil
	}

	res.status = StatusFailed
	if errEl == nil {
		res.errorMessage = doc.Text()
		return res, nil
	}
	code, err := strconv.Atoi(errEl.AttrValue("code"))
	if err != nil {
		return nil, ErrMalformedResponse
	}
	res.errorCode = code
	res.errorMessage = errEl.Text()
	return res, nil
}
