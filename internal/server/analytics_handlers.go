package server

import (
	"errors"
	"strings"

	"socialposts/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LikeAnalytics handles GET /api/analytics?date_from=YYYY-MM-DD&date_to=YYYY-MM-DD
// @Summary Likes per day
// @Description Count likes per calendar day between two dates, both inclusive
// @Tags analytics
// @Produce json
// @Param date_from query string true "First day (YYYY-MM-DD)"
// @Param date_to query string true "Last day (YYYY-MM-DD)"
// @Success 200 {object} map[string]int
// @Failure 400 {object} object{detail=string}
// @Failure 400 {object} object{error=string}
// @Router /analytics [get]
func (s *Server) LikeAnalytics(c *fiber.Ctx) error {
	dateFrom, dateTo := c.Query("date_from"), c.Query("date_to")
	// A bound that is present but blank is a bad date, not a missing one.
	args := c.Context().QueryArgs()
	if args.Has("date_from") && args.Has("date_to") &&
		(strings.TrimSpace(dateFrom) == "" || strings.TrimSpace(dateTo) == "") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": service.ErrDateRangeFormat.Message})
	}

	counts, err := s.analyticsService.LikeCountsByDay(c.UserContext(), dateFrom, dateTo)
	switch {
	case errors.Is(err, service.ErrDateRangeRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": service.ErrDateRangeRequired.Message})
	case errors.Is(err, service.ErrDateRangeFormat):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": service.ErrDateRangeFormat.Message})
	case err != nil:
		return respondServiceError(c, err)
	}
	return c.JSON(counts)
}
