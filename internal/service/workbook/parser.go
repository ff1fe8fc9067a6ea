// Package workbook parses "Formato Uniforme" workbooks into per-sheet
// person and garment tables. Parsing is tolerant: a malformed sheet records
// errors and warnings on its own result and never aborts the other sheets.
package workbook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leonardocandio/cargos/internal/model"
)

// Parser turns raw workbook grids into structured parse results.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log}
}

// ParseFile opens and parses a workbook from disk. The only workbook-level
// failure is an unopenable file; everything past that is recorded per sheet.
func (p *Parser) ParseFile(path string) (*model.ParsedWorkbook, error) {
	reader, err := OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	wb := p.Parse(reader)
	wb.FilePath = path
	return wb, nil
}

// Parse parses every sheet of an open workbook.
func (p *Parser) Parse(reader Reader) *model.ParsedWorkbook {
	wb := &model.ParsedWorkbook{FileID: uuid.New().String()}

	for _, name := range reader.SheetNames() {
		wb.Sheets = append(wb.Sheets, p.parseSheet(reader, name))
	}
	return wb
}

// parseSheet isolates one sheet: read failures and panics become errors on
// the sheet result.
func (p *Parser) parseSheet(reader Reader, name string) (result model.WorksheetParsingResult) {
	result.Metadata.SheetName = name

	defer func() {
		if r := recover(); r != nil {
			p.log.Error("sheet parse panicked", zap.String("sheet", name), zap.Any("panic", r))
			result.Errors = append(result.Errors, fmt.Sprintf("sheet %q: parse failed: %v", name, r))
		}
	}()

	rows, err := reader.Rows(name)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("sheet %q: read failed: %v", name, err))
		return result
	}

	return ParseGrid(name, rows)
}

// ParseGrid parses one sheet's raw grid against the fixed layout. Exposed
// separately so the pipeline stays testable without workbook files.
func ParseGrid(sheetName string, rows [][]string) model.WorksheetParsingResult {
	result := model.WorksheetParsingResult{
		Metadata: model.SheetMetadata{SheetName: sheetName},
	}

	parseMetadata(rows, &result)
	people, headers := parsePeople(rows, &result)
	result.People = people

	checkIdentityColumn(headers, people, &result)
	result.Garments = parseGarments(rows, len(people), &result)

	return result
}

func parseMetadata(rows [][]string, result *model.WorksheetParsingResult) {
	read := func(row int, field string) string {
		v := cellAt(rows, row, metaCol)
		if v == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("metadata %s missing (cell row %d)", field, row+1))
		}
		return v
	}
	result.Metadata.RequestDate = read(metaRowRequestDate, "request date")
	result.Metadata.Tienda = read(metaRowTienda, "tienda")
	result.Metadata.Administrador = read(metaRowAdmin, "administrador")
}

// parsePeople consumes the header row and the data rows of the person
// region, dropping rows that are empty across the whole region.
func parsePeople(rows [][]string, result *model.WorksheetParsingResult) ([]model.PersonRecord, []string) {
	if len(rows) <= dataStartRow {
		result.Warnings = append(result.Warnings, "sheet has no person data region")
		return nil, nil
	}

	type column struct {
		idx  int
		name string
	}
	var columns []column
	var headers []string
	for c := mainStartCol; c <= mainEndCol; c++ {
		name := cellAt(rows, dataStartRow, c)
		if name == "" {
			continue
		}
		columns = append(columns, column{idx: c, name: name})
		headers = append(headers, name)
	}
	if len(columns) == 0 {
		result.Warnings = append(result.Warnings, "person region has no column headers")
		return nil, nil
	}

	var people []model.PersonRecord
	for r := dataStartRow + 1; r < len(rows); r++ {
		empty := true
		for c := mainStartCol; c <= mainEndCol; c++ {
			if cellAt(rows, r, c) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		person := model.PersonRecord{
			Columns: headers,
			Values:  make(map[string]string, len(columns)),
		}
		for _, col := range columns {
			person.Values[col.name] = cellAt(rows, r, col.idx)
		}
		people = append(people, person)
	}
	return people, headers
}

// checkIdentityColumn surfaces people without an identity number. Records
// missing the column value are flagged but kept; downstream consumers decide.
func checkIdentityColumn(headers []string, people []model.PersonRecord, result *model.WorksheetParsingResult) {
	identityCol := ""
	for _, h := range headers {
		if strings.Contains(strings.ToLower(h), identityHeaderFragment) {
			identityCol = h
			break
		}
	}
	if identityCol == "" {
		result.Warnings = append(result.Warnings, "no DNI column found in person region")
		return
	}

	missing := 0
	for _, person := range people {
		if strings.TrimSpace(person.Get(identityCol)) == "" {
			missing++
		}
	}
	if missing > 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%d rows missing DNI in column %q", missing, identityCol))
	}
}

// parseGarments reads the garment-quantity grid, cleans fully-empty rows and
// aligns the result to the cleaned person count.
func parseGarments(rows [][]string, personCount int, result *model.WorksheetParsingResult) []model.GarmentRow {
	width := garmentRegionWidth(rows)
	if width != len(model.GarmentColumns) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("garment region width %d != expected %d; garment data skipped",
				width, len(model.GarmentColumns)))
		return nil
	}

	var garments []model.GarmentRow
	for r := garmentStartRow; r < len(rows); r++ {
		empty := true
		row := make(model.GarmentRow, len(model.GarmentColumns))
		for i, key := range model.GarmentColumns {
			raw := cellAt(rows, r, garmentStartCol+i)
			if raw != "" {
				empty = false
			}
			row[key] = parseQuantity(raw)
		}
		if empty {
			continue
		}
		garments = append(garments, row)
	}

	if len(garments) < personCount {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("garment grid has fewer rows (%d) than people (%d); missing people get no garments",
				len(garments), personCount))
	} else if len(garments) > personCount {
		garments = garments[:personCount]
	}
	return garments
}

// garmentRegionWidth measures the used width of the garment region over the
// header row and every row below it. Readers trim trailing empty cells, so a
// data row that only fills the first garment columns must not narrow the
// region; the width falls short only when the sheet's used range, garment
// header labels included, truly ends before the last garment column.
// Columns beyond the fixed end column do not belong to the region.
func garmentRegionWidth(rows [][]string) int {
	maxLen := 0
	for r := dataStartRow; r < len(rows); r++ {
		if len(rows[r]) > maxLen {
			maxLen = len(rows[r])
		}
	}
	if maxLen > garmentEndCol+1 {
		maxLen = garmentEndCol + 1
	}
	width := maxLen - garmentStartCol
	if width < 0 {
		width = 0
	}
	return width
}

// parseQuantity reads a cell as a non-fractional count; absent or
// unparseable cells count as zero.
func parseQuantity(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	// Spreadsheet numerics sometimes arrive as "2.0".
	if f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64); err == nil {
		return int(f)
	}
	return 0
}

func cellAt(rows [][]string, r, c int) string {
	if r < 0 || r >= len(rows) {
		return ""
	}
	row := rows[r]
	if c < 0 || c >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[c])
}
