package editor

// TotalPages is ceil(total/perPage), and at least 1.
func TotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// ClampPage forces page into [1, TotalPages(total, perPage)].
func ClampPage(page, total, perPage int) int {
	last := TotalPages(total, perPage)
	if page < 1 {
		return 1
	}
	if page > last {
		return last
	}
	return page
}

// PageBounds returns the half-open slice bounds of the visible page after clamping.
func PageBounds(page, total, perPage int) (start, end int) {
	if total <= 0 || perPage <= 0 {
		return 0, 0
	}
	page = ClampPage(page, total, perPage)
	start = (page - 1) * perPage
	end = min(page*perPage, total)
	return start, end
}
