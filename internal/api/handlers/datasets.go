/**
 * @description
 * Dataset API Handlers.
 * Exposes dataset lifecycle endpoints: current source metadata, live
 * fetching, CSV/XLSX upload, snapshot listing, activation, and deletion.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 * - backend/internal/dataset
 * - backend/internal/serpapi
 */

package handlers

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/staylens/backend/internal/dataset"
	"github.com/staylens/backend/internal/serpapi"
	"github.com/staylens/backend/internal/services"
)

type DatasetHandler struct {
	Service *services.DatasetService
}

func NewDatasetHandler(service *services.DatasetService) *DatasetHandler {
	return &DatasetHandler{Service: service}
}

// GetCurrent returns schema, diagnostics, and source metadata for the
// dataset currently being served
// GET /api/v1/datasets/current
func (h *DatasetHandler) GetCurrent(c *fiber.Ctx) error {
	res, info := h.Service.Current(c.Context())
	return c.JSON(fiber.Map{
		"source":      info,
		"schema":      res.Schema,
		"diagnostics": res.Diagnostics,
	})
}

type fetchRequest struct {
	Location   string `json:"location"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Adults     int    `json:"adults"`
	Currency   string `json:"currency"`
	MaxResults int    `json:"max_results"`
}

// Fetch pulls fresh listings from the live API and activates the snapshot
// POST /api/v1/datasets/fetch
func (h *DatasetHandler) Fetch(c *fiber.Ctx) error {
	var req fetchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Location == "" || req.CheckIn == "" || req.CheckOut == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "location, check_in, and check_out are required",
		})
	}

	snap, err := h.Service.FetchAndStore(c.Context(), serpapi.SearchParams{
		Location:   req.Location,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Adults:     req.Adults,
		Currency:   req.Currency,
		MaxResults: req.MaxResults,
	})
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(snap)
}

// Upload accepts a CSV or XLSX file and activates it as a snapshot
// POST /api/v1/datasets/upload (multipart, field "file")
func (h *DatasetHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing file upload"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to open upload"})
	}
	defer f.Close()

	var raw *dataset.Table
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".csv":
		raw, err = dataset.ReadCSV(f)
	case ".xlsx":
		raw, err = readXLSXUpload(f)
	default:
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
			"error": "Only .csv and .xlsx uploads are supported",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to parse upload: " + err.Error()})
	}

	snap, err := h.Service.StoreUpload(c.Context(), raw, fileHeader.Filename)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(snap)
}

func readXLSXUpload(f io.Reader) (*dataset.Table, error) {
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return dataset.ReadXLSX(content)
}

// ListSnapshots returns stored snapshot metadata, newest first
// GET /api/v1/datasets/snapshots
func (h *DatasetHandler) ListSnapshots(c *fiber.Ctx) error {
	if h.Service.Store == nil {
		return c.JSON([]interface{}{})
	}
	snaps, err := h.Service.Store.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list snapshots"})
	}
	return c.JSON(snaps)
}

// Activate points the dashboard at a stored snapshot
// POST /api/v1/datasets/snapshots/:id/activate
func (h *DatasetHandler) Activate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid snapshot id"})
	}
	if err := h.Service.Activate(c.Context(), id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "activated", "id": id})
}

// Deactivate clears the active snapshot pointer
// POST /api/v1/datasets/deactivate
func (h *DatasetHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.Service.Deactivate(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate snapshot"})
	}
	return c.JSON(fiber.Map{"status": "deactivated"})
}

// DeleteSnapshot removes a stored snapshot
// DELETE /api/v1/datasets/snapshots/:id
func (h *DatasetHandler) DeleteSnapshot(c *fiber.Ctx) error {
	if h.Service.Store == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Snapshot storage is not configured"})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid snapshot id"})
	}
	if err := h.Service.Store.Delete(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete snapshot"})
	}
	return c.JSON(fiber.Map{"status": "deleted", "id": id})
}
