package httputil

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/redmonkez12/go-social-api/internal/apperror"
)

const (
	PageParam     = "page"
	PageSizeParam = "page_size"
)

var ErrInvalidPage = apperror.NotFound("Invalid page.")

// PageRequest is a 1-based page number and page size.
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

func (p PageRequest) Limit() int {
	return p.Size
}

// Paginator reads page parameters with a default and a maximum page size.
type Paginator struct {
	DefaultSize int
	MaxSize     int
}

func NewPaginator(defaultSize, maxSize int) Paginator {
	return Paginator{DefaultSize: defaultSize, MaxSize: maxSize}
}

// Parse reads page and page_size from the query string.
// An unparsable or non-positive page is rejected; page_size falls back to
// the default when unparsable and is capped at MaxSize.
func (p Paginator) Parse(r *http.Request) (PageRequest, error) {
	req := PageRequest{Page: 1, Size: p.DefaultSize}

	q := r.URL.Query()
	if raw := q.Get(PageParam); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return PageRequest{}, ErrInvalidPage
		}
		req.Page = page
	}

	if raw := q.Get(PageSizeParam); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			req.Size = size
		}
	}
	if req.Size > p.MaxSize {
		req.Size = p.MaxSize
	}

	return req, nil
}

// Page is the paginated data payload.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage builds the payload with absolute next/previous links derived from r.
func NewPage[T any](r *http.Request, req PageRequest, count int, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}

	page := Page[T]{Count: count, Results: results}

	if req.Page*req.Size < count {
		next := pageURL(r, req.Page+1)
		page.Next = &next
	}
	if req.Page > 1 {
		prev := pageURL(r, req.Page-1)
		page.Previous = &prev
	}

	return page
}

func pageURL(r *http.Request, page int) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	q := r.URL.Query()
	if page == 1 {
		q.Del(PageParam)
	} else {
		q.Set(PageParam, strconv.Itoa(page))
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: q.Encode(),
	}
	return u.String()
}
