// Package catalog holds the occupation catalog: occupation categories, their
// free-text synonyms and per-garment price tables. A Catalog is a value
// snapshot; generation runs receive it read-only and edits produce a new
// snapshot through the store.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SizeGroup buckets raw garment sizes for pricing.
type SizeGroup int

const (
	SizeSML SizeGroup = iota // S, M, L and anything unrecognized
	SizeXL
	SizeXXL
	sizeGroupCount
)

// String returns the stored form of a size group.
func (s SizeGroup) String() string {
	switch s {
	case SizeXL:
		return "XL"
	case SizeXXL:
		return "XXL"
	default:
		return "SML"
	}
}

// ZoneGroup buckets raw tienda strings for pricing.
type ZoneGroup int

const (
	ZonePlazaVea ZoneGroup = iota
	ZoneVivanda
	ZoneOtros
	zoneGroupCount
)

// String returns the stored form of a zone group.
func (z ZoneGroup) String() string {
	switch z {
	case ZonePlazaVea:
		return "plaza vea"
	case ZoneVivanda:
		return "vivanda"
	default:
		return "otros"
	}
}

// SizeGroupFrom normalizes a raw size label. S, M and L collapse into SML;
// so does anything unrecognized.
func SizeGroupFrom(raw string) SizeGroup {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "XL":
		return SizeXL
	case "XXL":
		return SizeXXL
	default:
		return SizeSML
	}
}

// ZoneGroupFrom normalizes a raw tienda string by case-insensitive substring
// match, tolerant of space and underscore variants of the group names.
func ZoneGroupFrom(raw string) ZoneGroup {
	flat := strings.ToLower(raw)
	flat = strings.ReplaceAll(flat, "_", "")
	flat = strings.ReplaceAll(flat, " ", "")
	switch {
	case strings.Contains(flat, "plazavea"):
		return ZonePlazaVea
	case strings.Contains(flat, "vivanda"):
		return ZoneVivanda
	default:
		return ZoneOtros
	}
}

// ParseSizeGroup parses a stored size-group name.
func ParseSizeGroup(s string) SizeGroup {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "XL":
		return SizeXL
	case "XXL":
		return SizeXXL
	default:
		return SizeSML
	}
}

// ParseZoneGroup parses a stored zone-group name.
func ParseZoneGroup(s string) ZoneGroup {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plaza vea":
		return ZonePlazaVea
	case "vivanda":
		return ZoneVivanda
	default:
		return ZoneOtros
	}
}

// SizeGroups lists all size groups in table order.
func SizeGroups() []SizeGroup {
	return []SizeGroup{SizeSML, SizeXL, SizeXXL}
}

// ZoneGroups lists all zone groups in table order.
func ZoneGroups() []ZoneGroup {
	return []ZoneGroup{ZonePlazaVea, ZoneVivanda, ZoneOtros}
}

// PriceTable is the dense size × zone price matrix of one garment type.
// Every position exists; a zero value means "not priced for this
// combination" and is a legitimate pricing outcome.
type PriceTable [sizeGroupCount][zoneGroupCount]decimal.Decimal

// At returns the price at a (size, zone) position.
func (t PriceTable) At(size SizeGroup, zone ZoneGroup) decimal.Decimal {
	return t[size][zone]
}

// Set stores a price at a (size, zone) position.
func (t *PriceTable) Set(size SizeGroup, zone ZoneGroup, price decimal.Decimal) {
	t[size][zone] = price
}

// GarmentPricing is the price table of one garment type within an occupation.
type GarmentPricing struct {
	GarmentType string
	Prices      PriceTable
}

// OccupationEntry is one canonical occupation category.
type OccupationEntry struct {
	// Name is the canonical, unique occupation key.
	Name string
	// DisplayName is the label shown to operators.
	DisplayName string
	// Synonyms are alternate free-text labels, matched case-insensitively.
	Synonyms []string
	// Pricing lists the priced garment types in display order.
	Pricing []GarmentPricing
	Active  bool
}

// PricingFor finds the garment pricing entry whose declared type matches
// key, case-insensitively. Returns nil when the garment is not priced.
func (o *OccupationEntry) PricingFor(garmentType string) *GarmentPricing {
	for i := range o.Pricing {
		if strings.EqualFold(o.Pricing[i].GarmentType, garmentType) {
			return &o.Pricing[i]
		}
	}
	return nil
}

// Catalog is a read-only snapshot of all occupation entries.
type Catalog struct {
	Occupations []OccupationEntry
	// DefaultOccupation names the entry used to price people whose raw
	// occupation label matches nothing. The document label keeps the raw
	// text; only pricing falls back.
	DefaultOccupation string
}

// Resolve maps a raw occupation label to its catalog entry: case-insensitive
// exact match on the canonical name first, then on any synonym. No fuzzy or
// partial matching. Returns nil when unresolved.
func (c *Catalog) Resolve(rawOccupation string) *OccupationEntry {
	label := strings.TrimSpace(rawOccupation)
	if label == "" {
		return nil
	}
	for i := range c.Occupations {
		occ := &c.Occupations[i]
		if !occ.Active {
			continue
		}
		if strings.EqualFold(occ.Name, label) {
			return occ
		}
	}
	for i := range c.Occupations {
		occ := &c.Occupations[i]
		if !occ.Active {
			continue
		}
		for _, syn := range occ.Synonyms {
			if strings.EqualFold(syn, label) {
				return occ
			}
		}
	}
	return nil
}

// Default returns the fallback occupation entry, or nil when the catalog
// has none.
func (c *Catalog) Default() *OccupationEntry {
	return c.Resolve(c.DefaultOccupation)
}
