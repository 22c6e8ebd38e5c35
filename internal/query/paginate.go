package query

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"gorm.io/gorm"
)

const (
	// DefaultPerPage applies when per_page is absent or not a positive integer
	DefaultPerPage = 10
	// MaxPerPage caps per_page
	MaxPerPage = 100
)

// Link is one entry of the page navigation
type Link struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

// Page is one page of a resource listing
type Page[T any] struct {
	CurrentPage  int     `json:"current_page"`
	Data         []T     `json:"data"`
	FirstPageURL string  `json:"first_page_url"`
	From         *int    `json:"from"`
	LastPage     int     `json:"last_page"`
	LastPageURL  string  `json:"last_page_url"`
	Links        []Link  `json:"links"`
	NextPageURL  *string `json:"next_page_url"`
	Path         string  `json:"path"`
	PerPage      int     `json:"per_page"`
	PrevPageURL  *string `json:"prev_page_url"`
	To           *int    `json:"to"`
	Total        int64   `json:"total"`
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// PageParams reads page and per_page
func PageParams(params url.Values) (page, perPage int) {
	page = positiveInt(params.Get("page"), 1)
	perPage = positiveInt(params.Get("per_page"), DefaultPerPage)
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	// keeps (page-1)*perPage well inside int range
	if maxPage := math.MaxInt32 / perPage; page > maxPage {
		page = maxPage
	}
	return page, perPage
}

// Paginate filters, counts, sorts and loads one page of T. path is the absolute
// URL of the listing, used for navigation links.
func Paginate[T any](db *gorm.DB, opts Options, params url.Values, path string, preloads ...string) (*Page[T], error) {
	filtered, err := opts.Filter(db.Model(new(T)), params)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := filtered.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}

	sorted, err := opts.Sort(filtered.Session(&gorm.Session{}), params)
	if err != nil {
		return nil, err
	}

	page, perPage := PageParams(params)
	for _, p := range preloads {
		sorted = sorted.Preload(p)
	}

	items := make([]T, 0, perPage)
	if err := sorted.Offset((page - 1) * perPage).Limit(perPage).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}

	return NewPage(items, total, page, perPage, path, params), nil
}

// NewPage assembles page metadata around items
func NewPage[T any](items []T, total int64, page, perPage int, path string, params url.Values) *Page[T] {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	p := &Page[T]{
		CurrentPage: page,
		Data:        items,
		LastPage:    lastPage,
		Path:        path,
		PerPage:     perPage,
		Total:       total,
	}

	if len(items) > 0 {
		from := (page-1)*perPage + 1
		to := from + len(items) - 1
		p.From, p.To = &from, &to
	}

	pageURL := pageURLBuilder(path, params)
	p.FirstPageURL = pageURL(1)
	p.LastPageURL = pageURL(lastPage)
	if page > 1 {
		prev := pageURL(page - 1)
		p.PrevPageURL = &prev
	}
	if page < lastPage {
		next := pageURL(page + 1)
		p.NextPageURL = &next
	}

	p.Links = append(p.Links, Link{URL: p.PrevPageURL, Label: "&laquo; Previous"})
	for _, n := range window(page, lastPage) {
		if n == 0 {
			p.Links = append(p.Links, Link{Label: "..."})
			continue
		}
		u := pageURL(n)
		p.Links = append(p.Links, Link{URL: &u, Label: strconv.Itoa(n), Active: n == page})
	}
	p.Links = append(p.Links, Link{URL: p.NextPageURL, Label: "Next &raquo;"})

	return p
}

// pageURLBuilder keeps every other query parameter and replaces page
func pageURLBuilder(path string, params url.Values) func(int) string {
	kept := url.Values{}
	for k, v := range params {
		if k != "page" && len(v) > 0 && v[0] != "" {
			kept[k] = v
		}
	}

	return func(n int) string {
		q := url.Values{}
		for k, v := range kept {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(n))
		return path + "?" + q.Encode()
	}
}

// window lists the page numbers to link, with 0 marking a gap
func window(current, last int) []int {
	const side = 2
	if last <= 2*side+5 {
		pages := make([]int, 0, last)
		for i := 1; i <= last; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	start, end := current-side, current+side
	if start < 1 {
		start = 1
	}
	if end > last {
		end = last
	}

	var pages []int
	if start > 1 {
		pages = append(pages, 1)
		if start > 2 {
			pages = append(pages, 0)
		}
	}
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	if end < last {
		if end < last-1 {
			pages = append(pages, 0)
		}
		pages = append(pages, last)
	}
	return pages
}
