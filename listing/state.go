package listing

import "errors"

const DefaultPageSize = 5

// PageSizes are the rows-per-page choices offered by the product table.
var PageSizes = []int{5, 10, 25}

var ErrPageSize = errors.New("unsupported page size")

// State is the list input one user controls: filter text, page and page
// size. Every transition is explicit; Derive is re-run after each one.
type State struct {
	Filter   string `json:"filter"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

func NewState() State {
	return State{Page: 1, PageSize: DefaultPageSize}
}

// SetFilter changes the filter text and goes back to page 1.
func (s *State) SetFilter(text string) bool {
	if text == s.Filter {
		return false
	}
	s.Filter = text
	s.Page = 1
	return true
}

// SetPageSize changes rows per page and goes back to page 1. It reports
// whether the size changed.
func (s *State) SetPageSize(n int) (bool, error) {
	allowed := false
	for _, size := range PageSizes {
		if size == n {
			allowed = true
			break
		}
	}
	if !allowed {
		return false, ErrPageSize
	}
	if n == s.PageSize {
		return false, nil
	}
	s.PageSize = n
	s.Page = 1
	return true, nil
}

// GoTo moves to page if it lies in [1, totalPages]; anything else,
// including the current page, is ignored.
func (s *State) GoTo(page, totalPages int) bool {
	if page < 1 || page > totalPages || page == s.Page {
		return false
	}
	s.Page = page
	return true
}

// Clamp pulls the current page back into [1, totalPages], e.g. after a
// delete emptied the last page.
func (s *State) Clamp(totalPages int) bool {
	switch {
	case s.Page > totalPages:
		s.Page = totalPages
	case s.Page < 1:
		s.Page = 1
	default:
		return false
	}
	return true
}

// PageWindow returns up to five page numbers around current.
func PageWindow(current, totalPages int) []int {
	const maxButtons = 5
	start := max(1, current-maxButtons/2)
	end := min(totalPages, start+maxButtons-1)
	if end-start+1 < maxButtons {
		start = max(1, end-maxButtons+1)
	}
	pages := make([]int, 0, maxButtons)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}
