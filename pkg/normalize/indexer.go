package normalize

import "github.com/Optisol-SRL/vatee/pkg/scan"

// counters assigns the monotonically increasing position indexes over
// consumed non-empty rows: globalIndex across the whole document,
// pageIndex resetting at the first non-empty row of each new page.
type counters struct {
	page        int
	pageIndex   int
	globalIndex int
}

func newCounters() *counters {
	return &counters{page: 1, pageIndex: 1, globalIndex: 1}
}

// take returns the indexes for row and advances the counters. Every
// consumed non-empty row takes exactly one index.
func (c *counters) take(row scan.RawRow) (page, pageIndex, globalIndex int) {
	if c.page != row.Page {
		c.page = row.Page
		c.pageIndex = 1
	}
	page, pageIndex, globalIndex = row.Page, c.pageIndex, c.globalIndex
	c.pageIndex++
	c.globalIndex++
	return page, pageIndex, globalIndex
}
