// Package pager holds the pagination arithmetic shared by the admin list
// views: page counts, clamping and row windows.
package pager

type Pager struct {
	Total   int
	PerPage int
}

// TotalPages is ceil(Total/PerPage). An empty listing still has one page so
// the views always have a current page to stand on.
func (p Pager) TotalPages() int {
	if p.PerPage <= 0 {
		return 1
	}
	n := (p.Total + p.PerPage - 1) / p.PerPage
	if n < 1 {
		return 1
	}
	return n
}

// Clamp forces page into [1, TotalPages].
func (p Pager) Clamp(page int) int {
	if page < 1 {
		return 1
	}
	if max := p.TotalPages(); page > max {
		return max
	}
	return page
}

// Offset is the zero-based index of the first row on page.
func (p Pager) Offset(page int) int {
	return (p.Clamp(page) - 1) * p.PerPage
}

// Window returns the [start, end) row bounds for page against Total.
func (p Pager) Window(page int) (int, int) {
	start := p.Offset(page)
	end := start + p.PerPage
	if end > p.Total {
		end = p.Total
	}
	if start > end {
		start = end
	}
	return start, end
}
