package model

import "strings"

// Canonical garment-type keys, in the column order of the uniform grid.
// Pricing lookups always use these undecorated keys; the delivery/packer
// prefixes are stripped for display only.
const (
	GarmentCamisa         = "camisa"
	GarmentBlusa          = "blusa"
	GarmentMandilon       = "mandilon"
	GarmentAndarin        = "andarin"
	GarmentDeliveryPolo   = "deliverypolo"
	GarmentDeliveryCasaca = "deliverycasaca"
	GarmentDeliveryGorro  = "deliverygorro"
	GarmentPackerGorra    = "packergorra"
	GarmentPackerPolo     = "packerpolo"
)

// GarmentColumns is the required fixed-length column list of the garment
// grid, in sheet order.
var GarmentColumns = []string{
	GarmentCamisa,
	GarmentBlusa,
	GarmentMandilon,
	GarmentAndarin,
	GarmentDeliveryPolo,
	GarmentDeliveryCasaca,
	GarmentDeliveryGorro,
	GarmentPackerGorra,
	GarmentPackerPolo,
}

// oneSizeGarments have no size suffix on their display label.
var oneSizeGarments = map[string]bool{
	GarmentDeliveryGorro: true,
	GarmentPackerGorra:   true,
}

var displayPrefixes = []string{"delivery", "packer"}

// GarmentDisplayLabel returns the label shown on documents for a garment
// key: role prefixes stripped, uppercased.
func GarmentDisplayLabel(key string) string {
	label := strings.ToLower(strings.TrimSpace(key))
	for _, prefix := range displayPrefixes {
		if strings.HasPrefix(label, prefix) && len(label) > len(prefix) {
			label = label[len(prefix):]
			break
		}
	}
	return strings.ToUpper(label)
}

// GarmentIsOneSize reports whether a garment key is a one-size item.
func GarmentIsOneSize(key string) bool {
	return oneSizeGarments[strings.ToLower(strings.TrimSpace(key))]
}
