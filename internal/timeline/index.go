// index.go - Maps wall-clock timestamps to the test step that was running.
package timeline

import (
	"fmt"
	"sort"
	"time"
)

// Step is a test-step boundary supplied by the test runner.
type Step struct {
	StartedAt time.Time
	Label     string
}

// Page is one test step in HAR terms.
type Page struct {
	ID        string
	Title     string
	StartedAt time.Time
	used      bool
}

// Used reports whether any lookup resolved to this page.
func (p *Page) Used() bool { return p.used }

// Index answers floor lookups over pages ordered by start time.
type Index struct {
	pages  []*Page
	starts []int64 // epoch ms, parallel to pages
}

// NewIndex builds the index. Page ids are "page_<n>" in the order steps are
// given; steps are expected in chronological order and a stable sort keeps
// that order for equal start times.
func NewIndex(steps []Step) *Index {
	idx := &Index{
		pages:  make([]*Page, 0, len(steps)),
		starts: make([]int64, 0, len(steps)),
	}
	for i, s := range steps {
		idx.pages = append(idx.pages, &Page{
			ID:        fmt.Sprintf("page_%d", i),
			Title:     s.Label,
			StartedAt: s.StartedAt,
		})
	}
	sort.SliceStable(idx.pages, func(i, j int) bool {
		return idx.pages[i].StartedAt.Before(idx.pages[j].StartedAt)
	})
	for _, p := range idx.pages {
		idx.starts = append(idx.starts, p.StartedAt.UnixMilli())
	}
	return idx
}

// PageFor returns the page with the greatest start <= tsMs. A timestamp
// before every page resolves to the earliest page. Returns nil when the index
// is empty. The returned page is marked used.
func (idx *Index) PageFor(tsMs int64) *Page {
	if len(idx.pages) == 0 {
		return nil
	}
	// first page starting strictly after tsMs
	i := sort.Search(len(idx.starts), func(i int) bool { return idx.starts[i] > tsMs })
	if i > 0 {
		i--
	}
	p := idx.pages[i]
	p.used = true
	return p
}

// PageIDFor is PageFor returning "" instead of nil.
func (idx *Index) PageIDFor(tsMs int64) string {
	if p := idx.PageFor(tsMs); p != nil {
		return p.ID
	}
	return ""
}

// Pages returns every page in chronological order.
func (idx *Index) Pages() []*Page {
	return idx.pages
}

// UsedPages returns only the pages some lookup resolved to.
func (idx *Index) UsedPages() []*Page {
	var out []*Page
	for _, p := range idx.pages {
		if p.used {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of pages.
func (idx *Index) Len() int { return len(idx.pages) }
