package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Transport form of the catalog, shared by the YAML import/export workflow
// and the HTTP API. Prices travel as decimal strings keyed by
// "<size>/<zone>" so the dense table stays explicit and diff-friendly.

// CatalogDoc is the serializable catalog.
type CatalogDoc struct {
	DefaultOccupation string          `yaml:"default_occupation" json:"defaultOccupation"`
	Occupations       []OccupationDoc `yaml:"occupations" json:"occupations"`
}

// OccupationDoc is the serializable occupation entry.
type OccupationDoc struct {
	Name        string       `yaml:"name" json:"name"`
	DisplayName string       `yaml:"display_name" json:"displayName"`
	Synonyms    []string     `yaml:"synonyms,omitempty" json:"synonyms,omitempty"`
	Active      bool         `yaml:"active" json:"active"`
	Garments    []GarmentDoc `yaml:"garments" json:"garments"`
}

// GarmentDoc is the serializable price table of one garment type.
type GarmentDoc struct {
	Type   string            `yaml:"type" json:"type"`
	Prices map[string]string `yaml:"prices" json:"prices"`
}

func priceKey(size SizeGroup, zone ZoneGroup) string {
	return size.String() + "/" + zone.String()
}

// ToDoc converts a catalog snapshot to its transport form.
func ToDoc(c Catalog) CatalogDoc {
	doc := CatalogDoc{DefaultOccupation: c.DefaultOccupation}
	for _, occ := range c.Occupations {
		od := OccupationDoc{
			Name:        occ.Name,
			DisplayName: occ.DisplayName,
			Synonyms:    append([]string(nil), occ.Synonyms...),
			Active:      occ.Active,
		}
		for _, gp := range occ.Pricing {
			gd := GarmentDoc{Type: gp.GarmentType, Prices: make(map[string]string, 9)}
			for _, size := range SizeGroups() {
				for _, zone := range ZoneGroups() {
					gd.Prices[priceKey(size, zone)] = gp.Prices.At(size, zone).StringFixed(2)
				}
			}
			od.Garments = append(od.Garments, gd)
		}
		doc.Occupations = append(doc.Occupations, od)
	}
	return doc
}

// FromDoc converts a transport catalog back to a snapshot, validating
// uniqueness of occupation names and synonym ownership.
func FromDoc(doc CatalogDoc) (Catalog, error) {
	c := Catalog{DefaultOccupation: doc.DefaultOccupation}
	seenNames := make(map[string]bool)
	synonymOwner := make(map[string]string)

	for _, od := range doc.Occupations {
		name := strings.TrimSpace(od.Name)
		if name == "" {
			return Catalog{}, fmt.Errorf("occupation with empty name")
		}
		key := strings.ToUpper(name)
		if seenNames[key] {
			return Catalog{}, fmt.Errorf("duplicate occupation name %q", od.Name)
		}
		seenNames[key] = true

		occ := OccupationEntry{
			Name:        name,
			DisplayName: od.DisplayName,
			Active:      od.Active,
		}
		for _, syn := range od.Synonyms {
			syn = strings.TrimSpace(syn)
			if syn == "" {
				continue
			}
			synKey := strings.ToUpper(syn)
			if owner, ok := synonymOwner[synKey]; ok && owner != key {
				return Catalog{}, fmt.Errorf("synonym %q belongs to both %s and %s", syn, owner, name)
			}
			synonymOwner[synKey] = key
			occ.Synonyms = append(occ.Synonyms, syn)
		}

		for _, gd := range od.Garments {
			gp := GarmentPricing{GarmentType: strings.TrimSpace(gd.Type)}
			if gp.GarmentType == "" {
				return Catalog{}, fmt.Errorf("occupation %s: garment with empty type", name)
			}
			for k, v := range gd.Prices {
				size, zone, err := parsePriceKey(k)
				if err != nil {
					return Catalog{}, fmt.Errorf("occupation %s, garment %s: %w", name, gd.Type, err)
				}
				price, err := decimal.NewFromString(strings.TrimSpace(v))
				if err != nil {
					return Catalog{}, fmt.Errorf("occupation %s, garment %s, %s: bad price %q", name, gd.Type, k, v)
				}
				if price.IsNegative() {
					return Catalog{}, fmt.Errorf("occupation %s, garment %s, %s: negative price", name, gd.Type, k)
				}
				gp.Prices.Set(size, zone, price)
			}
			occ.Pricing = append(occ.Pricing, gp)
		}
		c.Occupations = append(c.Occupations, occ)
	}

	return c, nil
}

func parsePriceKey(k string) (SizeGroup, ZoneGroup, error) {
	parts := strings.SplitN(k, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bad price key %q", k)
	}
	return ParseSizeGroup(parts[0]), ParseZoneGroup(parts[1]), nil
}

// MarshalYAML renders a catalog snapshot as a YAML document.
func MarshalYAML(c Catalog) ([]byte, error) {
	return yaml.Marshal(ToDoc(c))
}

// UnmarshalYAML parses a YAML document into a catalog snapshot.
func UnmarshalYAML(data []byte) (Catalog, error) {
	var doc CatalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog yaml: %w", err)
	}
	return FromDoc(doc)
}
