/**
 * @description
 * Listings API Handler.
 * Serves cleaned rows as JSON objects for table views, with the shared
 * report filters plus limit/offset pagination.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 */

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/staylens/backend/internal/services"
)

type ListingHandler struct {
	Service *services.DatasetService
}

func NewListingHandler(service *services.DatasetService) *ListingHandler {
	return &ListingHandler{Service: service}
}

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// GetListings returns cleaned rows as column->value objects
// GET /api/v1/listings?limit&offset&price_min&price_max&min_rating
func (h *ListingHandler) GetListings(c *fiber.Ctx) error {
	filters, err := parseFilters(c)
	if err != nil {
		return err
	}

	limit := c.QueryInt("limit", defaultPageSize)
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	res, info := h.Service.Current(c.Context())
	t := filters.Apply(res.Table)

	total := t.NumRows()
	rows := make([]map[string]interface{}, 0, limit)
	for r := offset; r < total && len(rows) < limit; r++ {
		rows = append(rows, t.RowMap(r))
	}

	return c.JSON(fiber.Map{
		"total":   total,
		"limit":   limit,
		"offset":  offset,
		"columns": t.Columns(),
		"rows":    rows,
		"source":  info,
	})
}
