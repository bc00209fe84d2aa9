package store

// clone returns a copy of p, or nil.
func (p *Pagination) clone() *Pagination {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// afterRemove returns a new Pagination reflecting removed entities.
// Only a set Count is decremented, clamped at zero. PageCount is recomputed
// only when Count, PageCount and PageSize were all set.
func (p *Pagination) afterRemove(removed int) *Pagination {
	if p == nil {
		return nil
	}
	next := p.clone()
	if p.Count <= 0 {
		return next
	}
	next.Count = max(p.Count-removed, 0)
	if p.PageCount > 0 && p.PageSize > 0 {
		next.PageCount = pageCount(next.Count, next.PageSize)
	}
	return next
}

// pageCount is ceil(count / size).
func pageCount(count, size int) int {
	return (count + size - 1) / size
}
