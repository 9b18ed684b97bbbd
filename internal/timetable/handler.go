package timetable

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// TimetableHandler serves the read-only timetable endpoint.
type TimetableHandler struct {
	service *TimetableService
}

func NewTimetableHandler(service *TimetableService) *TimetableHandler {
	return &TimetableHandler{service: service}
}

// GetTimetable handles GET /api/timetable. An empty timetable collection is
// not an error: the response carries data null.
func (h *TimetableHandler) GetTimetable(c echo.Context) error {
	enriched, err := h.service.Enriched(c.Request().Context())
	if err != nil {
		log.Println("Timetable fetch error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if enriched == nil {
		return c.JSON(http.StatusOK, map[string]any{
			"data":    nil,
			"message": "No timetable found",
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": enriched})
}
