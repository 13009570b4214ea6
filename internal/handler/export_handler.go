package handler

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/maps-scraper/internal/dto"
	"github.com/octobees/maps-scraper/internal/export"
)

// ExportHandler re-encodes a result sequence as a CSV or JSON attachment
// for clients that cannot build downloads themselves.
type ExportHandler struct{}

func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// Export handles POST /api/export.
func (h *ExportHandler) Export(c echo.Context) error {
	var req dto.ExportRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	var buf bytes.Buffer
	switch strings.ToLower(strings.TrimSpace(req.Format)) {
	case "csv":
		if err := export.WriteCSV(&buf, req.Listings); err != nil {
			return Error(c, http.StatusInternalServerError, err.Error())
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="listings.csv"`)
		return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
	case "json", "":
		if err := export.WriteJSON(&buf, req.Listings); err != nil {
			return Error(c, http.StatusInternalServerError, err.Error())
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="listings.json"`)
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, buf.Bytes())
	default:
		return Error(c, http.StatusBadRequest, "unsupported export format: "+req.Format)
	}
}
