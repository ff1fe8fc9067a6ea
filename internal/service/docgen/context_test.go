package docgen

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/leonardocandio/cargos/internal/catalog"
	"github.com/leonardocandio/cargos/internal/model"
)

func testCatalog() catalog.Catalog {
	var shirt catalog.PriceTable
	shirt.Set(catalog.SizeSML, catalog.ZoneOtros, decimal.RequireFromString("10.00"))
	shirt.Set(catalog.SizeXL, catalog.ZoneOtros, decimal.RequireFromString("12.00"))

	var polo catalog.PriceTable
	polo.Set(catalog.SizeSML, catalog.ZoneOtros, decimal.RequireFromString("24.00"))

	return catalog.Catalog{
		DefaultOccupation: "CAJERO",
		Occupations: []catalog.OccupationEntry{
			{
				Name:     "CAJERO",
				Synonyms: []string{"CASHIER"},
				Active:   true,
				Pricing:  []catalog.GarmentPricing{{GarmentType: model.GarmentCamisa, Prices: shirt}},
			},
			{
				Name:    "DELIVERY",
				Active:  true,
				Pricing: []catalog.GarmentPricing{{GarmentType: model.GarmentDeliveryPolo, Prices: polo}},
			},
		},
	}
}

func person(values map[string]string) model.PersonRecord {
	columns := []string{"CARGO", "APELLIDOS Y NOMBRES", "DNI", "TALLA CAMISA"}
	v := make(map[string]string, len(columns))
	for _, c := range columns {
		v[c] = values[c]
	}
	return model.PersonRecord{Columns: columns, Values: v}
}

func buildInput(p model.PersonRecord, garments model.GarmentRow) BuildInput {
	return BuildInput{
		Person:   p,
		Garments: garments,
		Metadata: model.SheetMetadata{SheetName: "Store1", Tienda: "Tienda Norte", Administrador: "Maria Quispe"},
		Kinds:    model.AllKinds(),
		Now:      time.Date(2026, time.January, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestBuildContexts(t *testing.T) {
	cat := testCatalog()
	b := NewContextBuilder(&cat, zap.NewNop())

	contexts, err := b.Build(buildInput(
		person(map[string]string{
			"CARGO": "cajero", "APELLIDOS Y NOMBRES": "Ana Torres", "DNI": "44556677", "TALLA CAMISA": "M",
		}),
		model.GarmentRow{model.GarmentCamisa: 1},
	))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(contexts) != 2 {
		t.Fatalf("contexts=%d, want one per kind", len(contexts))
	}

	cargo := contexts[model.KindCargo]
	if cargo["NOMBRE"] != "Ana Torres" {
		t.Fatalf("NOMBRE=%q", cargo["NOMBRE"])
	}
	if cargo["MONTO"] != "10.00" {
		t.Fatalf("MONTO=%q, want 10.00", cargo["MONTO"])
	}
	if cargo["PRENDAS"] != "1 CAMISA TALLA M" {
		t.Fatalf("PRENDAS=%q", cargo["PRENDAS"])
	}
	if cargo["FECHA"] != "02 de enero de 2026" {
		t.Fatalf("CARGO FECHA=%q", cargo["FECHA"])
	}
	if contexts[model.KindAutorizacion]["FECHA"] != "02/01/2026" {
		t.Fatalf("AUTORIZACION FECHA=%q", contexts[model.KindAutorizacion]["FECHA"])
	}
}

func TestBuildQuantityDoesNotMultiplyPrice(t *testing.T) {
	cat := testCatalog()
	b := NewContextBuilder(&cat, zap.NewNop())

	contexts, err := b.Build(buildInput(
		person(map[string]string{
			"CARGO": "CAJERO", "APELLIDOS Y NOMBRES": "Ana Torres", "DNI": "44556677", "TALLA CAMISA": "M",
		}),
		model.GarmentRow{model.GarmentCamisa: 3},
	))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	// Charged once per garment type regardless of quantity.
	if got := contexts[model.KindCargo]["MONTO"]; got != "10.00" {
		t.Fatalf("MONTO=%q, want 10.00 for quantity 3", got)
	}
	if got := contexts[model.KindCargo]["PRENDAS"]; got != "3 CAMISA TALLA M" {
		t.Fatalf("PRENDAS=%q", got)
	}
}

func TestBuildUnresolvedOccupationPricesWithDefault(t *testing.T) {
	cat := testCatalog()
	b := NewContextBuilder(&cat, zap.NewNop())

	contexts, err := b.Build(buildInput(
		person(map[string]string{
			"CARGO": "VENDEDOR AMBULANTE", "APELLIDOS Y NOMBRES": "Ana Torres", "DNI": "44556677", "TALLA CAMISA": "XL",
		}),
		model.GarmentRow{model.GarmentCamisa: 1},
	))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	cargo := contexts[model.KindCargo]
	// Pricing falls back to the default occupation; the label does not.
	if cargo["CARGO"] != "VENDEDOR AMBULANTE" {
		t.Fatalf("CARGO label=%q, want raw text preserved", cargo["CARGO"])
	}
	if cargo["MONTO"] != "12.00" {
		t.Fatalf("MONTO=%q, want default-occupation XL price", cargo["MONTO"])
	}
}

func TestBuildGarmentDisplayRules(t *testing.T) {
	cat := testCatalog()
	b := NewContextBuilder(&cat, zap.NewNop())

	contexts, err := b.Build(buildInput(
		person(map[string]string{
			"CARGO": "DELIVERY", "APELLIDOS Y NOMBRES": "Ana Torres", "DNI": "44556677", "TALLA CAMISA": "M",
		}),
		model.GarmentRow{model.GarmentDeliveryPolo: 1, model.GarmentDeliveryGorro: 1},
	))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	lines := strings.Split(contexts[model.KindCargo]["PRENDAS"], "\n")
	if len(lines) != 2 {
		t.Fatalf("lines=%v", lines)
	}
	// Role prefix stripped, size appended for sized items only.
	if lines[0] != "1 POLO TALLA M" {
		t.Fatalf("line[0]=%q", lines[0])
	}
	if lines[1] != "1 GORRO" {
		t.Fatalf("line[1]=%q, one-size item must have no size suffix", lines[1])
	}
}

func TestBuildNoDisplayName(t *testing.T) {
	cat := testCatalog()
	b := NewContextBuilder(&cat, zap.NewNop())

	_, err := b.Build(buildInput(
		person(map[string]string{"CARGO": "CAJERO", "DNI": "44556677", "TALLA CAMISA": "M"}),
		model.GarmentRow{},
	))
	if err == nil {
		t.Fatalf("expected error for person with no derivable name")
	}
}

func TestDisplayNameFallbacks(t *testing.T) {
	split := model.PersonRecord{
		Columns: []string{"CARGO", "NOMBRES", "APELLIDOS", "DNI"},
		Values: map[string]string{
			"CARGO": "CAJERO", "NOMBRES": "Ana", "APELLIDOS": "Torres", "DNI": "44556677",
		},
	}
	if got := displayName(split); got != "Ana Torres" {
		t.Fatalf("split columns name=%q", got)
	}

	freeText := model.PersonRecord{
		Columns: []string{"CARGO", "PERSONAL", "DNI"},
		Values: map[string]string{
			"CARGO": "CAJERO", "PERSONAL": "Ana Torres", "DNI": "44556677",
		},
	}
	if got := displayName(freeText); got != "Ana Torres" {
		t.Fatalf("free text fallback name=%q", got)
	}

	onlyDigits := model.PersonRecord{
		Columns: []string{"CARGO", "PERSONAL", "DNI"},
		Values: map[string]string{
			"CARGO": "CAJERO", "PERSONAL": "12345678", "DNI": "44556677",
		},
	}
	if got := displayName(onlyDigits); got != "" {
		t.Fatalf("numeric cell must not become a name, got %q", got)
	}
}
