package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/leonardocandio/cargos/internal/model"
)

// table builds a price table from three size rows of plaza vea, vivanda and
// otros amounts.
func table(rows [3][3]string) PriceTable {
	var t PriceTable
	for si, row := range rows {
		for zi, v := range row {
			d, err := decimal.NewFromString(v)
			if err != nil {
				d = decimal.Zero
			}
			t[si][zi] = d
		}
	}
	return t
}

// Defaults returns the catalog installed on first run. Operators edit it
// through the catalog store; these values mirror the shipped configuration
// of the desktop tool this service replaces.
func Defaults() Catalog {
	return Catalog{
		DefaultOccupation: "CAJERO",
		Occupations: []OccupationEntry{
			{
				Name:        "CAJERO",
				DisplayName: "Cajero(a)",
				Synonyms:    []string{"CAJERA", "CAJERO PRINCIPAL", "CASHIER"},
				Active:      true,
				Pricing: []GarmentPricing{
					{GarmentType: model.GarmentCamisa, Prices: table([3][3]string{
						{"38.50", "41.00", "36.00"},
						{"41.50", "44.00", "39.00"},
						{"44.50", "47.00", "42.00"},
					})},
					{GarmentType: model.GarmentBlusa, Prices: table([3][3]string{
						{"36.00", "38.50", "33.50"},
						{"39.00", "41.50", "36.50"},
						{"42.00", "44.50", "39.50"},
					})},
					{GarmentType: model.GarmentMandilon, Prices: table([3][3]string{
						{"28.00", "30.00", "26.00"},
						{"30.00", "32.00", "28.00"},
						{"32.00", "34.00", "30.00"},
					})},
				},
			},
			{
				Name:        "REPONEDOR",
				DisplayName: "Reponedor(a)",
				Synonyms:    []string{"REPONEDORA", "REP", "REPO"},
				Active:      true,
				Pricing: []GarmentPricing{
					{GarmentType: model.GarmentCamisa, Prices: table([3][3]string{
						{"38.50", "41.00", "36.00"},
						{"41.50", "44.00", "39.00"},
						{"44.50", "47.00", "42.00"},
					})},
					{GarmentType: model.GarmentBlusa, Prices: table([3][3]string{
						{"36.00", "38.50", "33.50"},
						{"39.00", "41.50", "36.50"},
						{"42.00", "44.50", "39.50"},
					})},
					{GarmentType: model.GarmentAndarin, Prices: table([3][3]string{
						{"32.00", "34.50", "29.50"},
						{"34.50", "37.00", "32.00"},
						{"37.00", "39.50", "34.50"},
					})},
				},
			},
			{
				Name:        "PACKER",
				DisplayName: "Packer",
				Synonyms:    []string{"PKR", "EMPACADOR", "EMPACADORA"},
				Active:      true,
				Pricing: []GarmentPricing{
					{GarmentType: model.GarmentPackerPolo, Prices: table([3][3]string{
						{"24.00", "26.00", "22.00"},
						{"26.00", "28.00", "24.00"},
						{"28.00", "30.00", "26.00"},
					})},
					{GarmentType: model.GarmentPackerGorra, Prices: table([3][3]string{
						{"15.00", "16.50", "13.50"},
						{"15.00", "16.50", "13.50"},
						{"15.00", "16.50", "13.50"},
					})},
				},
			},
			{
				Name:        "DELIVERY",
				DisplayName: "Delivery",
				Synonyms:    []string{"DLV", "REPARTIDOR", "REPARTIDORA", "MOTORIZADO"},
				Active:      true,
				Pricing: []GarmentPricing{
					{GarmentType: model.GarmentDeliveryPolo, Prices: table([3][3]string{
						{"24.00", "26.00", "22.00"},
						{"26.00", "28.00", "24.00"},
						{"28.00", "30.00", "26.00"},
					})},
					{GarmentType: model.GarmentDeliveryCasaca, Prices: table([3][3]string{
						{"55.00", "58.00", "52.00"},
						{"58.00", "61.00", "55.00"},
						{"61.00", "64.00", "58.00"},
					})},
					{GarmentType: model.GarmentDeliveryGorro, Prices: table([3][3]string{
						{"12.00", "13.00", "11.00"},
						{"12.00", "13.00", "11.00"},
						{"12.00", "13.00", "11.00"},
					})},
				},
			},
			{
				Name:        "ADMINISTRADOR",
				DisplayName: "Administrador(a)",
				Synonyms:    []string{"ADMIN", "ADMINISTRADORA", "JEFE DE TIENDA"},
				Active:      true,
				Pricing: []GarmentPricing{
					{GarmentType: model.GarmentCamisa, Prices: table([3][3]string{
						{"38.50", "41.00", "36.00"},
						{"41.50", "44.00", "39.00"},
						{"44.50", "47.00", "42.00"},
					})},
					{GarmentType: model.GarmentBlusa, Prices: table([3][3]string{
						{"36.00", "38.50", "33.50"},
						{"39.00", "41.50", "36.50"},
						{"42.00", "44.50", "39.50"},
					})},
				},
			},
		},
	}
}
