package state

// PagerState tracks the scroll position of a pager over a fixed number of
// rows. One page is one terminal height of rows. The zero value is an empty,
// zero-height pager; use NewPagerState to size it.
type PagerState struct {
	currentRow  int
	currentPage int
	rowsPerPage int
	totalPages  int
	totalRows   int
	width       int
	height      int
}

// NewPagerState creates a state over totalRows rows for a terminal of the
// given size, positioned at the first row.
func NewPagerState(totalRows, width, height int) *PagerState {
	if totalRows < 0 {
		totalRows = 0
	}
	s := &PagerState{totalRows: totalRows}
	s.Resize(width, height)
	return s
}

func (s *PagerState) CurrentRow() int  { return s.currentRow }
func (s *PagerState) CurrentPage() int { return s.currentPage }
func (s *PagerState) RowsPerPage() int { return s.rowsPerPage }
func (s *PagerState) TotalPages() int  { return s.totalPages }
func (s *PagerState) TotalRows() int   { return s.totalRows }

// Size returns the last known terminal dimensions.
func (s *PagerState) Size() (int, int) { return s.width, s.height }

// GoToPage jumps to the first row of page, clamped to the valid page range.
func (s *PagerState) GoToPage(page int) {
	page = clamp(page, 0, s.lastPage())
	s.setRow(page * s.rowsPerPage)
}

func (s *PagerState) NextPage() {
	if s.currentPage < s.lastPage() {
		s.GoToPage(s.currentPage + 1)
	}
}

func (s *PagerState) PrevPage() {
	if s.currentPage > 0 {
		s.GoToPage(s.currentPage - 1)
	}
}

func (s *PagerState) NextRow() { s.ScrollDown(1) }
func (s *PagerState) PrevRow() { s.ScrollUp(1) }

func (s *PagerState) GoToFirst() { s.GoToPage(0) }
func (s *PagerState) GoToLast()  { s.GoToPage(s.lastPage()) }

// ScrollDown moves forward by lines rows, stopping at the last row.
func (s *PagerState) ScrollDown(lines int) {
	if lines <= 0 {
		return
	}
	if lines > s.lastRow()-s.currentRow {
		s.setRow(s.lastRow())
		return
	}
	s.setRow(s.currentRow + lines)
}

// ScrollUp moves back by lines rows, stopping at the first row.
func (s *PagerState) ScrollUp(lines int) {
	if lines <= 0 {
		return
	}
	if lines >= s.currentRow {
		s.setRow(0)
		return
	}
	s.setRow(s.currentRow - lines)
}

// ViewportStart is the index of the first visible row.
func (s *PagerState) ViewportStart() int { return s.currentRow }

// ViewportEnd is one past the index of the last visible row.
func (s *PagerState) ViewportEnd() int {
	return min(s.currentRow+s.rowsPerPage, s.totalRows)
}

// PageStart is the first row of the current page.
func (s *PagerState) PageStart() int { return s.currentPage * s.rowsPerPage }

// PageEnd is one past the last row of the current page.
func (s *PagerState) PageEnd() int {
	return min(s.PageStart()+s.rowsPerPage, s.totalRows)
}

// Resize applies new terminal dimensions. The current row is kept when it is
// still valid; only the page index is recomputed.
func (s *PagerState) Resize(width, height int) {
	s.width = max(width, 0)
	s.height = max(height, 0)
	s.rowsPerPage = s.height
	s.totalPages = pageCount(s.totalRows, s.rowsPerPage)
	s.setRow(s.currentRow)
}

func (s *PagerState) setRow(row int) {
	s.currentRow = clamp(row, 0, s.lastRow())
	if s.rowsPerPage == 0 {
		s.currentPage = 0
		return
	}
	s.currentPage = s.currentRow / s.rowsPerPage
}

func (s *PagerState) lastRow() int {
	if s.totalRows == 0 {
		return 0
	}
	return s.totalRows - 1
}

func (s *PagerState) lastPage() int {
	return max(s.totalPages-1, 0)
}

func pageCount(rows, perPage int) int {
	if perPage <= 0 || rows <= 0 {
		return 1
	}
	return (rows + perPage - 1) / perPage
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
