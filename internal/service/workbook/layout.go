package workbook

// Fixed cell layout of the "Formato Uniforme" workbook. All positions are
// 0-indexed. Only this layout is supported; arbitrary workbooks are out of
// contract.
const (
	// Metadata scalars live in column C, rows 3-5 of the sheet.
	metaCol            = 2
	metaRowRequestDate = 2
	metaRowTienda      = 3
	metaRowAdmin       = 4

	// Person region: row 7 of the sheet holds the column headers, data
	// follows. Column A is ignored; the region spans B..I inclusive.
	dataStartRow = 6
	mainStartCol = 1
	mainEndCol   = 8

	// Garment grid: data from row 8, columns J..R inclusive, one column
	// per entry of model.GarmentColumns.
	garmentStartRow = 7
	garmentStartCol = 9
	garmentEndCol   = 17
)

// identityHeaderFragment marks the identity column by case-insensitive
// substring match on the header.
const identityHeaderFragment = "dni"
