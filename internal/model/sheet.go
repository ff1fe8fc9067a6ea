package model

// SheetMetadata holds the scalar header cells of one worksheet.
type SheetMetadata struct {
	SheetName     string `json:"sheetName"`
	RequestDate   string `json:"requestDate"`
	Tienda        string `json:"tienda"`
	Administrador string `json:"administrador"`
}

// PersonRecord is one data row of the person region, keyed by header name.
// Columns preserves the header order of the sheet.
type PersonRecord struct {
	Columns []string          `json:"columns"`
	Values  map[string]string `json:"values"`
}

// Get returns the cell value for an exact header name.
func (p PersonRecord) Get(column string) string {
	return p.Values[column]
}

// GarmentRow maps garment-type key to assigned quantity for one person.
type GarmentRow map[string]int

// WorksheetParsingResult is the outcome of parsing a single sheet.
// Errors and Warnings never abort other sheets.
type WorksheetParsingResult struct {
	Metadata SheetMetadata `json:"metadata"`
	People   []PersonRecord `json:"people"`
	// Garments is positionally aligned to People. It may be shorter than
	// People when the garment grid had fewer usable rows; the missing tail
	// simply has no garment data.
	Garments []GarmentRow `json:"garments"`
	Errors   []string     `json:"errors"`
	Warnings []string     `json:"warnings"`
}

// GarmentFor returns the garment row aligned to person index i, or an empty
// row when the grid had no data for that person.
func (r WorksheetParsingResult) GarmentFor(i int) GarmentRow {
	if i < 0 || i >= len(r.Garments) {
		return GarmentRow{}
	}
	return r.Garments[i]
}

// ParsedWorkbook is the workbook-level parse result.
type ParsedWorkbook struct {
	FileID   string                   `json:"fileId"`
	FilePath string                   `json:"filePath"`
	Sheets   []WorksheetParsingResult `json:"sheets"`
}

// TotalPeople counts parsed person rows across all sheets.
func (w ParsedWorkbook) TotalPeople() int {
	total := 0
	for _, s := range w.Sheets {
		total += len(s.People)
	}
	return total
}
