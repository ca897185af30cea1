package workflow

// Pager windows an ordered record collection into fixed-size pages. It owns
// the collection for its screen; panels only borrow the selected record.
//
// Page state deliberately persists across SetRecords (clamped back into range
// when the collection shrinks) instead of resetting to page 1; that matches
// the shipped behavior the product owners have not asked to change.
type Pager[T any] struct {
	records  []T
	pageSize int
	page     int
}

const defaultPageSize = 5

// NewPager creates an empty pager positioned on page 1.
func NewPager[T any](pageSize int) *Pager[T] {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Pager[T]{pageSize: pageSize, page: 1}
}

// SetRecords replaces the whole collection, clamping the current page.
func (p *Pager[T]) SetRecords(records []T) {
	p.records = records
	p.clamp()
}

// Records returns the backing collection.
func (p *Pager[T]) Records() []T {
	return p.records
}

// Len returns the total record count.
func (p *Pager[T]) Len() int {
	return len(p.records)
}

// Page returns the current 1-indexed page.
func (p *Pager[T]) Page() int {
	return p.page
}

// PageSize returns the configured page size.
func (p *Pager[T]) PageSize() int {
	return p.pageSize
}

// TotalPages returns ceil(len/pageSize); zero for an empty collection.
func (p *Pager[T]) TotalPages() int {
	return (len(p.records) + p.pageSize - 1) / p.pageSize
}

// GoToPage moves to page n. Out-of-range requests are a no-op, not an error.
func (p *Pager[T]) GoToPage(n int) {
	if n < 1 || n > p.TotalPages() {
		return
	}
	p.page = n
}

// NextPage advances one page when possible.
func (p *Pager[T]) NextPage() {
	p.GoToPage(p.page + 1)
}

// PrevPage steps back one page when possible.
func (p *Pager[T]) PrevPage() {
	p.GoToPage(p.page - 1)
}

// PageSlice returns the records visible on the current page: exactly
// min(pageSize, remaining) items.
func (p *Pager[T]) PageSlice() []T {
	start := (p.page - 1) * p.pageSize
	if start >= len(p.records) {
		return nil
	}
	end := start + p.pageSize
	if end > len(p.records) {
		end = len(p.records)
	}
	return p.records[start:end]
}

// Replace swaps the first record matching the predicate with updated.
// Returns false when nothing matched; the collection is then unchanged.
func (p *Pager[T]) Replace(match func(T) bool, updated T) bool {
	for i := range p.records {
		if match(p.records[i]) {
			p.records[i] = updated
			return true
		}
	}
	return false
}

func (p *Pager[T]) clamp() {
	total := p.TotalPages()
	if total == 0 {
		p.page = 1
		return
	}
	if p.page > total {
		p.page = total
	}
	if p.page < 1 {
		p.page = 1
	}
}
