package page

import (
	"sort"
)

// SortByDefault sorts pages by the default sort.
func SortByDefault(pages Pages) {
	pageBy(DefaultPageSort).Sort(pages)
}

var (
	// DefaultPageSort is the default sort func for pages:
	// Order by Date (newest first), Title and then full file path.
	DefaultPageSort = func(p1, p2 *Page) bool {
		if p1.Date.Unix() == p2.Date.Unix() {
			if p1.Title == p2.Title {
				if p1.File == nil || p2.File == nil {
					return p1.File == nil && p2.File != nil
				}
				return p1.File.Path() < p2.File.Path()
			}
			return p1.Title < p2.Title
		}
		return p1.Date.Unix() > p2.Date.Unix()
	}
)

// pageBy is a closure used in the Sort.Less method.
type pageBy func(p1, p2 *Page) bool

// Sort stable sorts the pages given the receiver's sort order.
func (by pageBy) Sort(pages Pages) {
	ps := &pageSorter{
		pages: pages,
		by:    by, // The Sort method's receiver is the function (closure) that defines the sort order.
	}
	sort.Stable(ps)
}

// A pageSorter implements the sort interface for Pages
type pageSorter struct {
	pages Pages
	by    pageBy
}

func (ps *pageSorter) Len() int      { return len(ps.pages) }
func (ps *pageSorter) Swap(i, j int) { ps.pages[i], ps.pages[j] = ps.pages[j], ps.pages[i] }

// Less is part of sort.Interface. It is implemented by calling the "by" closure in the sorter.
func (ps *pageSorter) Less(i, j int) bool { return ps.by(ps.pages[i], ps.pages[j]) }

// ByTitle sorts the Pages by title, returning a sorted copy.
func (p Pages) ByTitle() Pages {
	title := func(p1, p2 *Page) bool {
		return p1.Title < p2.Title
	}

	pages := make(Pages, len(p))
	copy(pages, p)
	pageBy(title).Sort(pages)
	return pages
}

// ByDate sorts the Pages by date, oldest first, returning a sorted copy.
func (p Pages) ByDate() Pages {
	date := func(p1, p2 *Page) bool {
		return p1.Date.Unix() < p2.Date.Unix()
	}

	pages := make(Pages, len(p))
	copy(pages, p)
	pageBy(date).Sort(pages)
	return pages
}

// Reverse reverses the order in Pages, returning a copy.
func (p Pages) Reverse() Pages {
	pages := make(Pages, len(p))
	for i, pp := range p {
		pages[len(p)-1-i] = pp
	}
	return pages
}
