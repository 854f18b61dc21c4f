package listing

// PageItem is one entry in the rendered pagination strip: either a page
// button or an ellipsis gap.
type PageItem struct {
	Number   int // zero-based page index, meaningless when Ellipsis
	Ellipsis bool
}

// Display returns the 1-indexed page number shown on the button
func (p PageItem) Display() int {
	return p.Number + 1
}

func page(n int) PageItem { return PageItem{Number: n} }
func ellipsis() PageItem  { return PageItem{Ellipsis: true} }

// Window computes the pagination strip for a given page count and current
// page (both zero-based). The tie-breaks are load-bearing: screens were
// verified against this exact layout.
//
//	totalPages <= 5            -> every page
//	currentPage < 3            -> 0..3, gap, last
//	currentPage >= totalPages-3 -> first, gap, last four
//	otherwise                  -> first, gap, three centered, gap, last
func Window(totalPages, currentPage int) []PageItem {
	if totalPages <= 0 {
		return nil
	}

	if totalPages <= 5 {
		items := make([]PageItem, 0, totalPages)
		for i := 0; i < totalPages; i++ {
			items = append(items, page(i))
		}
		return items
	}

	last := totalPages - 1

	if currentPage < 3 {
		return []PageItem{page(0), page(1), page(2), page(3), ellipsis(), page(last)}
	}

	if currentPage >= totalPages-3 {
		return []PageItem{page(0), ellipsis(), page(last - 3), page(last - 2), page(last - 1), page(last)}
	}

	return []PageItem{
		page(0),
		ellipsis(),
		page(currentPage - 1), page(currentPage), page(currentPage + 1),
		ellipsis(),
		page(last),
	}
}
