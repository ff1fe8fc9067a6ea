// Package pricing resolves the unit price of one garment assignment. Pure
// lookup, no I/O: the result depends only on the inputs and the catalog
// snapshot passed in.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/leonardocandio/cargos/internal/catalog"
)

// Price maps (garment type, raw size, raw occupation, raw tienda) to a unit
// price. Unknown occupations and unpriced garments resolve to zero, never an
// error; a zero price is a legitimate "not priced for this combination"
// outcome.
func Price(cat *catalog.Catalog, garmentType, rawSize, rawOccupation, rawTienda string) decimal.Decimal {
	occ := cat.Resolve(rawOccupation)
	if occ == nil {
		return decimal.Zero
	}
	return PriceFor(occ, garmentType, rawSize, rawTienda)
}

// PriceFor prices a garment against an already-resolved occupation entry.
// Callers that apply the default-occupation fallback resolve first and use
// this form so the fallback decision stays with them.
func PriceFor(occ *catalog.OccupationEntry, garmentType, rawSize, rawTienda string) decimal.Decimal {
	if occ == nil {
		return decimal.Zero
	}
	gp := occ.PricingFor(garmentType)
	if gp == nil {
		return decimal.Zero
	}
	size := catalog.SizeGroupFrom(rawSize)
	zone := catalog.ZoneGroupFrom(rawTienda)
	return gp.Prices.At(size, zone)
}
