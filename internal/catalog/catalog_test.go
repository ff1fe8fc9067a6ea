package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestResolveCanonicalAndSynonym(t *testing.T) {
	c := Defaults()

	byName := c.Resolve("packer")
	require.NotNil(t, byName)
	require.Equal(t, "PACKER", byName.Name)

	bySynonym := c.Resolve("pkr")
	require.NotNil(t, bySynonym)
	require.Equal(t, byName, bySynonym)

	require.Nil(t, c.Resolve("ASTRONAUTA"))
	require.Nil(t, c.Resolve("  "))
}

func TestResolveSkipsInactive(t *testing.T) {
	c := Catalog{Occupations: []OccupationEntry{
		{Name: "CAJERO", Synonyms: []string{"CASHIER"}, Active: false},
	}}
	require.Nil(t, c.Resolve("cajero"))
	require.Nil(t, c.Resolve("cashier"))
}

func TestSizeGroupFrom(t *testing.T) {
	cases := map[string]SizeGroup{
		"S":    SizeSML,
		"m":    SizeSML,
		"L":    SizeSML,
		"XL":   SizeXL,
		"xl":   SizeXL,
		"XXL":  SizeXXL,
		"":     SizeSML,
		"38.5": SizeSML,
	}
	for raw, want := range cases {
		require.Equal(t, want, SizeGroupFrom(raw), "raw=%q", raw)
	}
}

func TestZoneGroupFrom(t *testing.T) {
	cases := map[string]ZoneGroup{
		"Plaza Vea Cortijo":  ZonePlazaVea,
		"PLAZA_VEA JOCKEY":   ZonePlazaVea,
		"plazavea higuereta": ZonePlazaVea,
		"VIVANDA Pardo":      ZoneVivanda,
		"vivanda_benavides":  ZoneVivanda,
		"Metro Centro":       ZoneOtros,
		"":                   ZoneOtros,
	}
	for raw, want := range cases {
		require.Equal(t, want, ZoneGroupFrom(raw), "raw=%q", raw)
	}
}

func TestDocRoundTrip(t *testing.T) {
	original := Defaults()

	data, err := MarshalYAML(original)
	require.NoError(t, err)

	restored, err := UnmarshalYAML(data)
	require.NoError(t, err)

	require.Equal(t, original.DefaultOccupation, restored.DefaultOccupation)
	require.Len(t, restored.Occupations, len(original.Occupations))

	occ := restored.Resolve("CAJERO")
	require.NotNil(t, occ)
	gp := occ.PricingFor("camisa")
	require.NotNil(t, gp)
	want := original.Resolve("CAJERO").PricingFor("camisa").Prices.At(SizeXL, ZoneVivanda)
	require.True(t, want.Equal(gp.Prices.At(SizeXL, ZoneVivanda)))
}

func TestFromDocRejectsDuplicates(t *testing.T) {
	_, err := FromDoc(CatalogDoc{Occupations: []OccupationDoc{
		{Name: "CAJERO", Active: true},
		{Name: "cajero", Active: true},
	}})
	require.Error(t, err)

	_, err = FromDoc(CatalogDoc{Occupations: []OccupationDoc{
		{Name: "CAJERO", Synonyms: []string{"CAJA"}, Active: true},
		{Name: "PACKER", Synonyms: []string{"caja"}, Active: true},
	}})
	require.Error(t, err)
}

func TestFromDocRejectsBadPrices(t *testing.T) {
	doc := CatalogDoc{Occupations: []OccupationDoc{{
		Name:   "CAJERO",
		Active: true,
		Garments: []GarmentDoc{{
			Type:   "camisa",
			Prices: map[string]string{"SML/otros": "abc"},
		}},
	}}}
	_, err := FromDoc(doc)
	require.Error(t, err)

	doc.Occupations[0].Garments[0].Prices = map[string]string{"SML/otros": "-1.00"}
	_, err = FromDoc(doc)
	require.Error(t, err)
}

func TestPricingForIsCaseInsensitive(t *testing.T) {
	occ := OccupationEntry{Pricing: []GarmentPricing{{GarmentType: "camisa"}}}
	require.NotNil(t, occ.PricingFor("CAMISA"))
	require.Nil(t, occ.PricingFor("cam"))
}

func TestPriceTableDefaultsToZero(t *testing.T) {
	var table PriceTable
	for _, size := range SizeGroups() {
		for _, zone := range ZoneGroups() {
			require.True(t, decimal.Zero.Equal(table.At(size, zone)))
		}
	}
}
