package service

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// clampPage normalizes limit/offset to sane bounds.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
