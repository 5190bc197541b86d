package listing

import (
	"fmt"
	"strings"

	"github.com/princinho/sahoadmin/models"
)

// View is one page of the filtered product collection.
type View struct {
	Items      []models.Product `json:"items"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
}

// Derive filters the full collection and cuts out the requested page. It is
// pure: callers re-run it on every input change instead of patching a
// previous View. page is not clamped here; a page outside
// [1, TotalPages] yields no items.
func Derive(products []models.Product, filter string, page, pageSize int) View {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	matched := Filter(products, filter)
	total := len(matched)

	v := View{
		Items:      []models.Product{},
		Total:      total,
		TotalPages: max(1, (total+pageSize-1)/pageSize),
		Page:       page,
		PageSize:   pageSize,
	}
	start := (page - 1) * pageSize
	if page >= 1 && start < total {
		end := min(start+pageSize, total)
		v.Items = append(v.Items, matched[start:end]...)
	}
	return v
}

// Filter keeps products whose title, SKU or category name contains filter,
// ignoring case. An empty filter keeps everything.
func Filter(products []models.Product, filter string) []models.Product {
	if filter == "" {
		return products
	}
	needle := strings.ToLower(filter)
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matches(p, needle) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p models.Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Sku), needle) ||
		strings.Contains(strings.ToLower(p.CategoryName()), needle)
}

// Summary is the footer line under the product table.
func (v View) Summary(filter string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Showing %d of %d products", len(v.Items), v.Total)
	if filter != "" {
		fmt.Fprintf(&b, " matching %q", filter)
	}
	fmt.Fprintf(&b, " (Page %d of %d)", v.Page, v.TotalPages)
	return b.String()
}
