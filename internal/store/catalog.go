package store

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/leonardocandio/cargos/internal/catalog"
)

// LoadCatalog reads the full occupation catalog. An empty database is
// seeded with the built-in defaults first, so callers always get a
// usable catalog back.
func (s *Store) LoadCatalog() (catalog.Catalog, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM occupations").Scan(&count); err != nil {
		return catalog.Catalog{}, fmt.Errorf("failed to count occupations: %w", err)
	}
	if count == 0 {
		seed := catalog.Defaults()
		if err := s.SaveCatalog(seed); err != nil {
			return catalog.Catalog{}, fmt.Errorf("failed to seed default catalog: %w", err)
		}
		return seed, nil
	}
	return s.readCatalog()
}

func (s *Store) readCatalog() (catalog.Catalog, error) {
	rows, err := s.db.Query(`
		SELECT id, name, display_name, is_default, active
		FROM occupations ORDER BY id
	`)
	if err != nil {
		return catalog.Catalog{}, err
	}
	defer rows.Close()

	var cat catalog.Catalog
	index := make(map[int64]int)
	for rows.Next() {
		var (
			id                  int64
			name, display       string
			isDefault, isActive int
		)
		if err := rows.Scan(&id, &name, &display, &isDefault, &isActive); err != nil {
			return catalog.Catalog{}, err
		}
		if isDefault != 0 {
			cat.DefaultOccupation = name
		}
		index[id] = len(cat.Occupations)
		cat.Occupations = append(cat.Occupations, catalog.OccupationEntry{
			Name:        name,
			DisplayName: display,
			Active:      isActive != 0,
		})
	}
	if err := rows.Err(); err != nil {
		return catalog.Catalog{}, err
	}

	if err := s.readSynonyms(&cat, index); err != nil {
		return catalog.Catalog{}, err
	}
	if err := s.readPrices(&cat, index); err != nil {
		return catalog.Catalog{}, err
	}
	return cat, nil
}

func (s *Store) readSynonyms(cat *catalog.Catalog, index map[int64]int) error {
	rows, err := s.db.Query(`
		SELECT occupation_id, synonym FROM occupation_synonyms ORDER BY id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var occID int64
		var syn string
		if err := rows.Scan(&occID, &syn); err != nil {
			return err
		}
		if i, ok := index[occID]; ok {
			cat.Occupations[i].Synonyms = append(cat.Occupations[i].Synonyms, syn)
		}
	}
	return rows.Err()
}

func (s *Store) readPrices(cat *catalog.Catalog, index map[int64]int) error {
	rows, err := s.db.Query(`
		SELECT occupation_id, garment, size_group, zone_group, price
		FROM garment_prices ORDER BY id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var occID int64
		var garment, sizeName, zoneName, priceStr string
		if err := rows.Scan(&occID, &garment, &sizeName, &zoneName, &priceStr); err != nil {
			return err
		}
		i, ok := index[occID]
		if !ok {
			continue
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return fmt.Errorf("bad stored price %q for garment %q: %w", priceStr, garment, err)
		}
		occ := &cat.Occupations[i]
		gp := occ.PricingFor(garment)
		if gp == nil {
			occ.Pricing = append(occ.Pricing, catalog.GarmentPricing{GarmentType: garment})
			gp = &occ.Pricing[len(occ.Pricing)-1]
		}
		gp.Prices.Set(catalog.ParseSizeGroup(sizeName), catalog.ParseZoneGroup(zoneName), price)
	}
	return rows.Err()
}

// SaveCatalog replaces the stored catalog with cat in a single
// transaction. Zero prices are mostly implicit (an unstored (size, zone)
// position reads back as zero), but every garment entry keeps at least one
// row so the declared garment list itself round-trips.
func (s *Store) SaveCatalog(cat catalog.Catalog) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"garment_prices", "occupation_synonyms", "occupations"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, occ := range cat.Occupations {
		if err := insertOccupation(tx, cat.DefaultOccupation, occ); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertOccupation(tx *sql.Tx, defaultName string, occ catalog.OccupationEntry) error {
	isDefault := 0
	if occ.Name == defaultName {
		isDefault = 1
	}
	active := 0
	if occ.Active {
		active = 1
	}
	res, err := tx.Exec(`
		INSERT INTO occupations (name, display_name, is_default, active)
		VALUES (?, ?, ?, ?)
	`, occ.Name, occ.DisplayName, isDefault, active)
	if err != nil {
		return fmt.Errorf("failed to insert occupation %q: %w", occ.Name, err)
	}
	occID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, syn := range occ.Synonyms {
		if _, err := tx.Exec(`
			INSERT INTO occupation_synonyms (occupation_id, synonym) VALUES (?, ?)
		`, occID, syn); err != nil {
			return fmt.Errorf("failed to insert synonym %q: %w", syn, err)
		}
	}

	for _, gp := range occ.Pricing {
		wrote := false
		for _, size := range catalog.SizeGroups() {
			for _, zone := range catalog.ZoneGroups() {
				price := gp.Prices.At(size, zone)
				if price.IsZero() {
					continue
				}
				if err := insertPrice(tx, occID, occ.Name, gp.GarmentType, size, zone, price.String()); err != nil {
					return err
				}
				wrote = true
			}
		}
		// An unpriced garment still belongs to the declared list; keep one
		// zero row so the entry survives a save/load round trip.
		if !wrote {
			if err := insertPrice(tx, occID, occ.Name, gp.GarmentType,
				catalog.SizeSML, catalog.ZoneOtros, "0"); err != nil {
				return err
			}
		}
	}
	return nil
}

func insertPrice(tx *sql.Tx, occID int64, occName, garment string, size catalog.SizeGroup, zone catalog.ZoneGroup, price string) error {
	if _, err := tx.Exec(`
		INSERT INTO garment_prices (occupation_id, garment, size_group, zone_group, price)
		VALUES (?, ?, ?, ?, ?)
	`, occID, garment, size.String(), zone.String(), price); err != nil {
		return fmt.Errorf("failed to insert price for %q/%q: %w", occName, garment, err)
	}
	return nil
}
