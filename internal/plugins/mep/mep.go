// Package mep provides the analysis plugins for mechanical, electrical and
// plumbing systems.
package mep

import (
	"github.com/constructai/estimator-cli/internal/costtab"
	"github.com/constructai/estimator-cli/internal/model"
)

// priceUnits sums count and material cost across equipment or fixture line
// items. The rate resolves against the item's type and description combined,
// so "GFCI receptacle" hits the gfci keyword before the generic receptacle
// rate. Quantity defaults to 1 per line item.
func priceUnits(items []map[string]any, table costtab.Table) (count, total float64) {
	for _, item := range items {
		quantity, ok := model.Num(item, "quantity")
		if !ok || quantity <= 0 {
			quantity = 1
		}
		rate := table.Resolve(model.Str(item, "type") + " " + model.Str(item, "description"))
		count += quantity
		total += quantity * rate
	}
	return count, total
}
