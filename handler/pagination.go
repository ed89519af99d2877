package handler

import (
	"errors"
	"strconv"
)

var errInvalidPage = errors.New("invalid page")

type Page struct {
	Number  int
	Pages   int
	PerPage int
	Total   int
}

func (p Page) Offset() int      { return (p.Number - 1) * p.PerPage }
func (p Page) HasNext() bool     { return p.Number < p.Pages }
func (p Page) HasPrevious() bool { return p.Number > 1 }
func (p Page) Next() int         { return p.Number + 1 }
func (p Page) Previous() int     { return p.Number - 1 }

// paginate resolves the raw ?page= value. The first page always exists,
// even for an empty listing; "last" names the final page.
func paginate(total, perPage int, raw string) (Page, error) {
	if perPage <= 0 {
		perPage = 1
	}
	pages := (total + perPage - 1) / perPage
	if pages == 0 {
		pages = 1
	}
	p := Page{Number: 1, Pages: pages, PerPage: perPage, Total: total}
	switch raw {
	case "":
	case "last":
		p.Number = pages
	default:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > pages {
			return p, errInvalidPage
		}
		p.Number = n
	}
	return p, nil
}
