package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/leonardocandio/cargos/internal/model"
)

// SheetSummary is the per-sheet slice of a parse response.
type SheetSummary struct {
	SheetName     string   `json:"sheetName"`
	Tienda        string   `json:"tienda"`
	Administrador string   `json:"administrador"`
	RequestDate   string   `json:"requestDate"`
	PeopleCount   int      `json:"peopleCount"`
	GarmentRows   int      `json:"garmentRows"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
}

// ParseResponse summarizes one parsed workbook.
type ParseResponse struct {
	FileID      string         `json:"fileId"`
	TotalPeople int            `json:"totalPeople"`
	Sheets      []SheetSummary `json:"sheets"`
}

// ParseWorkbook accepts an uploaded spreadsheet, parses every sheet and
// keeps the result in memory for a later generate call.
// POST /api/workbook/parse
func (h *Handler) ParseWorkbook(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no uploaded file"})
		return
	}

	uploadedFile := files[0]

	// The temp file keeps the original name so the parser can pick the
	// reader by extension.
	tempPath := filepath.Join(os.TempDir(),
		fmt.Sprintf("cargos_upload_%d_%s", time.Now().Unix(), filepath.Base(uploadedFile.Filename)))

	if err := c.SaveUploadedFile(uploadedFile, tempPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save upload"})
		return
	}
	defer os.Remove(tempPath)

	wb, err := h.parser.ParseFile(tempPath)
	if err != nil {
		h.log.Warn("workbook unreadable", zap.String("file", uploadedFile.Filename), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	h.workbooks.put(wb)
	c.JSON(http.StatusOK, summarize(wb))
}

// GetWorkbook returns the parse summary of a previously uploaded workbook.
// GET /api/workbook/:id
func (h *Handler) GetWorkbook(c *gin.Context) {
	wb, ok := h.workbooks.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "workbook not found or expired"})
		return
	}
	c.JSON(http.StatusOK, summarize(wb))
}

func summarize(wb *model.ParsedWorkbook) ParseResponse {
	resp := ParseResponse{
		FileID:      wb.FileID,
		TotalPeople: wb.TotalPeople(),
		Sheets:      make([]SheetSummary, 0, len(wb.Sheets)),
	}
	for _, sheet := range wb.Sheets {
		resp.Sheets = append(resp.Sheets, SheetSummary{
			SheetName:     sheet.Metadata.SheetName,
			Tienda:        sheet.Metadata.Tienda,
			Administrador: sheet.Metadata.Administrador,
			RequestDate:   sheet.Metadata.RequestDate,
			PeopleCount:   len(sheet.People),
			GarmentRows:   len(sheet.Garments),
			Errors:        sheet.Errors,
			Warnings:      sheet.Warnings,
		})
	}
	return resp
}
