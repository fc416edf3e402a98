package core

// PageInfo is the pagination bookkeeping a paginated cache carries.
// Total is authoritative only immediately after a successful list
// fetch; writes drift it optimistically until the next fetch.
type PageInfo struct {
	Page     int `json:"page"`     // 1-based
	PageSize int `json:"pageSize"` // fixed positive
	Total    int `json:"total"`    // >= 0 right after a list fetch
}

// TotalPages returns ceil(Total / PageSize). Zero items is zero pages.
func (p PageInfo) TotalPages() int {
	if p.PageSize <= 0 || p.Total <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// ClampedPage is the UI-facing page number, clamped to
// [1, TotalPages]. The cache itself never clamps what it is asked to
// fetch; it trusts the caller not to request an out-of-range page.
func (p PageInfo) ClampedPage() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	if max := p.TotalPages(); max > 0 && page > max {
		page = max
	}
	return page
}

// OffsetRange converts the page to the inclusive [start, end] offsets
// the gateway's list operation takes.
func (p PageInfo) OffsetRange() (start, end int) {
	start = (p.Page - 1) * p.PageSize
	return start, start + p.PageSize - 1
}
