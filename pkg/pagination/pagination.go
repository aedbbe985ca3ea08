// Package pagination splits ordered result sets into numbered pages.
package pagination

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrInvalidPage is returned for a page parameter that is neither a number nor "last".
	ErrInvalidPage = errors.New("invalid page")
	// ErrEmptyPage is returned for a page number outside the available range.
	ErrEmptyPage = errors.New("page contains no results")
)

// Page describes one page of a result set. Numbers are 1-based.
type Page struct {
	Number   int `json:"page"`
	PerPage  int `json:"page_size"`
	Total    int `json:"total"`
	NumPages int `json:"total_pages"`
}

// New resolves the raw page parameter against a result set of total rows. An empty
// parameter means the first page; the first page always exists even when total is 0.
func New(raw string, perPage, total int) (Page, error) {
	if perPage < 1 {
		perPage = 1
	}
	numPages := (total + perPage - 1) / perPage
	if numPages == 0 {
		numPages = 1
	}

	p := Page{PerPage: perPage, Total: total, NumPages: numPages}

	raw = strings.TrimSpace(raw)
	switch raw {
	case "":
		p.Number = 1
	case "last":
		p.Number = numPages
	default:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, ErrInvalidPage
		}
		p.Number = n
	}

	if p.Number < 1 || p.Number > numPages {
		return p, ErrEmptyPage
	}
	return p, nil
}

func (p Page) Offset() int { return (p.Number - 1) * p.PerPage }
func (p Page) Limit() int  { return p.PerPage }

func (p Page) HasNext() bool     { return p.Number < p.NumPages }
func (p Page) HasPrevious() bool { return p.Number > 1 }
func (p Page) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p Page) NextNumber() int     { return p.Number + 1 }
func (p Page) PreviousNumber() int { return p.Number - 1 }

// Range lists every page number, for pagers that render all links.
func (p Page) Range() []int {
	out := make([]int, p.NumPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// StartIndex and EndIndex give the 1-based positions of the first and last row on the page.
func (p Page) StartIndex() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

func (p Page) EndIndex() int {
	if p.Number == p.NumPages {
		return p.Total
	}
	return p.Number * p.PerPage
}
