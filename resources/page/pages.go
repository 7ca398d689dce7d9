package page

// Pages is a slice of Page objects. This is the most common list type.
type Pages []*Page

// Len returns the number of pages in the list.
func (p Pages) Len() int {
	return len(p)
}

// Limit returns the first n pages.
func (p Pages) Limit(n int) Pages {
	if n < 0 || len(p) <= n {
		return p
	}
	return p[:n]
}

// Filter returns the pages for which keep returns true.
func (p Pages) Filter(keep func(*Page) bool) Pages {
	var res Pages
	for _, pp := range p {
		if keep(pp) {
			res = append(res, pp)
		}
	}
	return res
}
