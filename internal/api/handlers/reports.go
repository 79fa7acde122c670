/**
 * @description
 * Report API Handlers.
 * Each endpoint resolves the current cleaned dataset, applies the shared
 * price/rating filters from the query string, and runs one aggregator.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/reports
 * - backend/internal/services
 */

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/staylens/backend/internal/dataset"
	"github.com/staylens/backend/internal/reports"
	"github.com/staylens/backend/internal/services"
)

type ReportHandler struct {
	Service *services.DatasetService
}

func NewReportHandler(service *services.DatasetService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// filtered resolves the current dataset and applies query-string filters.
func (h *ReportHandler) filtered(c *fiber.Ctx) (*dataset.Table, error) {
	filters, err := parseFilters(c)
	if err != nil {
		return nil, err
	}
	res, _ := h.Service.Current(c.Context())
	return filters.Apply(res.Table), nil
}

func parseFilters(c *fiber.Ctx) (reports.Filters, error) {
	var f reports.Filters
	for _, q := range []struct {
		name string
		dst  **float64
	}{
		{"price_min", &f.PriceMin},
		{"price_max", &f.PriceMax},
		{"min_rating", &f.MinRating},
	} {
		raw := c.Query(q.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "invalid "+q.name)
		}
		*q.dst = &v
	}
	return f, nil
}

// GetOverview returns headline market stats
// GET /api/v1/reports/overview
func (h *ReportHandler) GetOverview(c *fiber.Ctx) error {
	t, err := h.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(reports.Overview(t))
}

// GetPriceDemand returns price distribution and demand correlation stats
// GET /api/v1/reports/price-demand
func (h *ReportHandler) GetPriceDemand(c *fiber.Ctx) error {
	t, err := h.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(reports.PriceDemand(t))
}

// GetGeographical returns per-location rollups and coordinate bounds
// GET /api/v1/reports/geographical
func (h *ReportHandler) GetGeographical(c *fiber.Ctx) error {
	t, err := h.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(reports.Geographical(t))
}

// GetRoomsAmenities returns room-type stats and amenity price premiums
// GET /api/v1/reports/rooms-amenities
func (h *ReportHandler) GetRoomsAmenities(c *fiber.Ctx) error {
	t, err := h.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(reports.RoomsAmenities(t))
}

// GetHosts returns host-type distribution and top host portfolios
// GET /api/v1/reports/hosts
func (h *ReportHandler) GetHosts(c *fiber.Ctx) error {
	t, err := h.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(reports.Hosts(t))
}

// GetSeasonality returns availability and review-activity stats
// GET /api/v1/reports/seasonality
func (h *ReportHandler) GetSeasonality(c *fiber.Ctx) error {
	t, err := h.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(reports.Seasonality(t))
}

// GetRatingValue returns rating segments, top value picks, and hidden gems
// GET /api/v1/reports/rating-value
func (h *ReportHandler) GetRatingValue(c *fiber.Ctx) error {
	t, err := h.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(reports.RatingValue(t))
}
