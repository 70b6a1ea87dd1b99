package browse

// PageItem is one pagination control: a page number or an ellipsis gap.
type PageItem struct {
	Page     int
	Ellipsis bool
}

// maxPlainPages is the page count up to which every page gets a button.
const maxPlainPages = 7

// PageButtons lays out the page buttons for the current page. Up to seven
// pages are listed in full; longer ranges keep the first and last page and
// the neighbours of current, with ellipses over the gaps.
func PageButtons(current, total int) []PageItem {
	if total < 1 {
		return nil
	}
	current = clamp(current, 1, total)

	if total <= maxPlainPages {
		items := make([]PageItem, 0, total)
		for p := 1; p <= total; p++ {
			items = append(items, PageItem{Page: p})
		}
		return items
	}

	items := []PageItem{{Page: 1}}
	lo := max(2, current-1)
	hi := min(total-1, current+1)

	if lo > 2 {
		items = append(items, PageItem{Ellipsis: true})
	}
	for p := lo; p <= hi; p++ {
		items = append(items, PageItem{Page: p})
	}
	if hi < total-1 {
		items = append(items, PageItem{Ellipsis: true})
	}
	return append(items, PageItem{Page: total})
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
