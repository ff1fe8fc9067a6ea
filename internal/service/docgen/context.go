// Package docgen assembles render-ready document contexts and drives
// document generation with partial-failure tolerance.
package docgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/leonardocandio/cargos/internal/catalog"
	"github.com/leonardocandio/cargos/internal/model"
	"github.com/leonardocandio/cargos/internal/service/pricing"
)

var spanishMonths = [13]string{"",
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// BuildInput bundles everything needed to build the contexts of one person.
type BuildInput struct {
	Person   model.PersonRecord
	Garments model.GarmentRow
	Metadata model.SheetMetadata
	Kinds    []model.DocumentKind
	// Now is the document date; documents carry the system date, not the
	// spreadsheet request date.
	Now time.Time
}

// ContextBuilder turns person rows into per-kind document contexts.
type ContextBuilder struct {
	catalog *catalog.Catalog
	log     *zap.Logger
}

// NewContextBuilder creates a builder over one catalog snapshot.
func NewContextBuilder(cat *catalog.Catalog, log *zap.Logger) *ContextBuilder {
	if log == nil {
		log = zap.NewNop()
	}
	return &ContextBuilder{catalog: cat, log: log}
}

// Build returns one context per enabled document kind. A failure building
// one kind omits only that kind. The returned error is non-nil only when no
// display name can be derived, in which case the person must be skipped.
func (b *ContextBuilder) Build(in BuildInput) (map[model.DocumentKind]model.DocumentContext, error) {
	name := displayName(in.Person)
	if name == "" {
		return nil, fmt.Errorf("no display name derivable for row")
	}

	rawOccupation := columnValue(in.Person, []string{"cargo"}, []string{"cargo", "puesto"})
	size := columnValue(in.Person, []string{"talla"}, []string{"talla"})
	dni := columnValue(in.Person, []string{"dni"}, []string{"dni"})

	// Unresolved occupations price through the catalog default while the
	// document keeps the raw label. The mismatch is surfaced so an operator
	// can add the missing synonym.
	occ := b.catalog.Resolve(rawOccupation)
	if occ == nil {
		occ = b.catalog.Default()
		b.log.Warn("occupation not in catalog, pricing with default",
			zap.String("label", rawOccupation),
			zap.String("person", name),
			zap.String("sheet", in.Metadata.SheetName))
	}

	total := b.totalAmount(occ, in.Garments, size, in.Metadata.Tienda)
	garmentList := garmentLines(in.Garments, size)

	contexts := make(map[model.DocumentKind]model.DocumentContext, len(in.Kinds))
	for _, kind := range in.Kinds {
		ctx, err := b.buildKind(kind, in, name, rawOccupation, dni, total, garmentList)
		if err != nil {
			b.log.Warn("context build failed, kind skipped",
				zap.String("kind", string(kind)),
				zap.String("person", name),
				zap.Error(err))
			continue
		}
		contexts[kind] = ctx
	}
	return contexts, nil
}

func (b *ContextBuilder) buildKind(kind model.DocumentKind, in BuildInput, name, occupation, dni string, total decimal.Decimal, garmentList []string) (ctx model.DocumentContext, err error) {
	defer func() {
		if r := recover(); r != nil {
			ctx = nil
			err = fmt.Errorf("building %s context: %v", kind, r)
		}
	}()

	ctx = model.DocumentContext{
		"NOMBRE":        name,
		"CARGO":         occupation,
		"DNI":           dni,
		"TIENDA":        in.Metadata.Tienda,
		"ADMINISTRADOR": in.Metadata.Administrador,
		"FECHA":         formatDate(kind, in.Now),
		"MONTO":         total.StringFixed(2),
		"PRENDAS":       strings.Join(garmentList, "\n"),
	}
	return ctx, nil
}

// totalAmount sums the unit price of every assigned garment type. Quantity
// does not multiply the price: the charge is per person per garment type,
// a deliberate business rule carried over from the source process.
func (b *ContextBuilder) totalAmount(occ *catalog.OccupationEntry, garments model.GarmentRow, rawSize, tienda string) decimal.Decimal {
	total := decimal.Zero
	for _, key := range model.GarmentColumns {
		if garments[key] <= 0 {
			continue
		}
		total = total.Add(pricing.PriceFor(occ, key, rawSize, tienda))
	}
	return total
}

// garmentLines renders the assigned garments as display entries in grid
// column order.
func garmentLines(garments model.GarmentRow, rawSize string) []string {
	var lines []string
	for _, key := range model.GarmentColumns {
		qty := garments[key]
		if qty <= 0 {
			continue
		}
		line := fmt.Sprintf("%d %s", qty, model.GarmentDisplayLabel(key))
		if !model.GarmentIsOneSize(key) && strings.TrimSpace(rawSize) != "" {
			line += " TALLA " + strings.ToUpper(strings.TrimSpace(rawSize))
		}
		lines = append(lines, line)
	}
	return lines
}

// formatDate renders the system date: Spanish long form for CARGO, numeric
// slash form for everything else.
func formatDate(kind model.DocumentKind, now time.Time) string {
	if kind == model.KindCargo {
		return fmt.Sprintf("%02d de %s de %d", now.Day(), spanishMonths[now.Month()], now.Year())
	}
	return fmt.Sprintf("%02d/%02d/%d", now.Day(), int(now.Month()), now.Year())
}

// displayName derives the person's display name: a combined name column
// first, then separate first/last columns, then the first non-trivial free
// text cell outside the structural columns.
func displayName(person model.PersonRecord) string {
	if v := columnValue(person, nil, []string{"apellidos y nombres", "nombre completo"}); v != "" {
		return v
	}
	nombres := columnValue(person, []string{"nombres"}, nil)
	apellidos := columnValue(person, []string{"apellidos"}, nil)
	if nombres != "" && apellidos != "" {
		return nombres + " " + apellidos
	}

	structural := func(header string) bool {
		h := strings.ToLower(header)
		return strings.Contains(h, "cargo") || strings.Contains(h, "dni") || strings.Contains(h, "talla")
	}
	for _, col := range person.Columns {
		if structural(col) {
			continue
		}
		v := strings.TrimSpace(person.Get(col))
		if len(v) >= 4 && !allDigits(v) {
			return v
		}
	}
	return ""
}

// columnValue finds a cell by prioritized header match: exact matches first,
// then substring matches, both case-insensitive and in column order.
func columnValue(person model.PersonRecord, exact, substrings []string) string {
	for _, want := range exact {
		for _, col := range person.Columns {
			if strings.EqualFold(strings.TrimSpace(col), want) {
				return strings.TrimSpace(person.Get(col))
			}
		}
	}
	for _, want := range substrings {
		for _, col := range person.Columns {
			if strings.Contains(strings.ToLower(col), strings.ToLower(want)) {
				return strings.TrimSpace(person.Get(col))
			}
		}
	}
	return ""
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
