package catalog

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// CatalogHandler exposes the CRUD and bulk-upload endpoints for the four
// entity collections.
type CatalogHandler struct {
	service  *CatalogService
	importer *ImportService
}

func NewCatalogHandler(service *CatalogService, importer *ImportService) *CatalogHandler {
	return &CatalogHandler{service: service, importer: importer}
}

// GetData handles GET /api/data?type=&page=&limit=.
func (h *CatalogHandler) GetData(c echo.Context) error {
	typ := c.QueryParam("type")
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), typ, page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// DeleteData handles DELETE /api/data?type=&id=.
func (h *CatalogHandler) DeleteData(c echo.Context) error {
	typ := c.QueryParam("type")
	if _, err := Lookup(typ); err != nil {
		return writeError(c, err)
	}
	id := c.QueryParam("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "ID is required"})
	}

	if err := h.service.Delete(c.Request().Context(), typ, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Record deleted successfully"})
}

// CreateRecord handles POST /api/data/:type.
func (h *CatalogHandler) CreateRecord(c echo.Context) error {
	typ := c.Param("type")
	var rec Record
	if err := c.Bind(&rec); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	created, err := h.service.Create(c.Request().Context(), typ, rec)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Record created successfully",
		"data":    created,
	})
}

// UpdateRecord handles PUT /api/data/:type/:id.
func (h *CatalogHandler) UpdateRecord(c echo.Context) error {
	typ := c.Param("type")
	id := c.Param("id")
	var rec Record
	if err := c.Bind(&rec); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	updated, err := h.service.Update(c.Request().Context(), typ, id, rec)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Record updated successfully",
		"data":    updated,
	})
}

// UploadJSON handles POST /api/upload-json: multipart form with a `file`
// field holding a JSON object or array and a `type` field naming the entity.
func (h *CatalogHandler) UploadJSON(c echo.Context) error {
	return h.upload(c, func(r io.Reader) ([]Record, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return DecodeJSON(data)
	})
}

// UploadCSV handles POST /api/upload-csv: same contract as UploadJSON with a
// header-row CSV file instead.
func (h *CatalogHandler) UploadCSV(c echo.Context) error {
	return h.upload(c, DecodeCSV)
}

func (h *CatalogHandler) upload(c echo.Context, decode func(io.Reader) ([]Record, error)) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No file provided"})
	}
	typ := c.FormValue("type")
	if _, err := Lookup(typ); err != nil {
		return writeError(c, err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer file.Close()

	records, err := decode(file)
	if err != nil {
		return writeError(c, err)
	}

	result, err := h.importer.Import(c.Request().Context(), typ, records)
	if err != nil {
		return writeError(c, err)
	}

	response := map[string]any{
		"message": fmt.Sprintf("Successfully processed %d %s records", result.Count, typ),
		"count":   result.Count,
		"type":    typ,
	}
	if len(result.Errors) > 0 {
		response["errors"] = result.Errors
		response["message"] = fmt.Sprintf("%s (%d errors occurred)", response["message"], len(result.Errors))
	}
	return c.JSON(http.StatusOK, response)
}

// writeError maps catalog errors onto the HTTP taxonomy: bad type or payload
// and validation failures are client errors, a missing record is 404, and
// anything else is logged and hidden behind a generic 500.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ErrInvalidType):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid data type"})
	case errors.Is(err, ErrInvalidPayload), IsValidation(err):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Record not found"})
	default:
		log.Println("Catalog error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}
