package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/stockroom/core/internal/domain/inventory"
	"github.com/stockroom/core/internal/infrastructure/logger"
	"github.com/stockroom/core/internal/ports"
)

// ItemResponse is the response body for single-item queries and mutations.
type ItemResponse struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// LowStockResponse is the response body for low-stock queries.
type LowStockResponse struct {
	Threshold int      `json:"threshold"`
	Items     []string `json:"items"`
}

// MessageResponse is a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// InventoryHandler handles inventory-related requests
type InventoryHandler struct {
	service          ports.InventoryService
	defaultThreshold int
	logger           *logger.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service ports.InventoryService, defaultThreshold int, logger *logger.Logger) *InventoryHandler {
	return &InventoryHandler{
		service:          service,
		defaultThreshold: defaultThreshold,
		logger:           logger,
	}
}

// AddStock handles adding quantity to an item
func (h *InventoryHandler) AddStock(c echo.Context) error {
	var req ports.AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rec, err := h.service.AddItem(c.Request().Context(), c.Param("name"), req.Quantity)
	if err != nil {
		h.logger.Error("Add stock failed", "error", err, "item", c.Param("name"))
		return domainHTTPError(err)
	}

	return c.JSON(http.StatusOK, ItemResponse{Name: rec.Item, Quantity: rec.Current})
}

// RemoveStock handles removing quantity from an item
func (h *InventoryHandler) RemoveStock(c echo.Context) error {
	var req ports.AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rec, err := h.service.RemoveItem(c.Request().Context(), c.Param("name"), req.Quantity)
	if err != nil {
		h.logger.Error("Remove stock failed", "error", err, "item", c.Param("name"))
		return domainHTTPError(err)
	}

	return c.JSON(http.StatusOK, ItemResponse{Name: rec.Item, Quantity: rec.Current})
}

// GetItem handles getting the quantity of a single item
func (h *InventoryHandler) GetItem(c echo.Context) error {
	name := c.Param("name")

	qty, err := h.service.GetQuantity(c.Request().Context(), name)
	if err != nil {
		return domainHTTPError(err)
	}

	return c.JSON(http.StatusOK, ItemResponse{Name: name, Quantity: qty})
}

// ListItems handles getting a snapshot of all holdings
func (h *InventoryHandler) ListItems(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Snapshot(c.Request().Context()))
}

// ListLowStock handles the low-stock query
func (h *InventoryHandler) ListLowStock(c echo.Context) error {
	threshold := h.defaultThreshold
	if raw := c.QueryParam("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid threshold")
		}
		threshold = parsed
	}

	items, err := h.service.ListLowStock(c.Request().Context(), threshold)
	if err != nil {
		return domainHTTPError(err)
	}

	if items == nil {
		items = []string{}
	}

	return c.JSON(http.StatusOK, LowStockResponse{Threshold: threshold, Items: items})
}

// GetReport handles the plain-text holdings report
func (h *InventoryHandler) GetReport(c echo.Context) error {
	return c.String(http.StatusOK, h.service.Report(c.Request().Context()))
}

// SaveInventory handles persisting the current holdings
func (h *InventoryHandler) SaveInventory(c echo.Context) error {
	if err := h.service.SaveInventory(c.Request().Context()); err != nil {
		h.logger.Error("Save inventory failed", "error", err)
		return domainHTTPError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Inventory saved"})
}

// LoadInventory handles replacing the holdings from the backing file
func (h *InventoryHandler) LoadInventory(c echo.Context) error {
	if err := h.service.LoadInventory(c.Request().Context()); err != nil {
		h.logger.Error("Load inventory failed", "error", err)
		return domainHTTPError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Inventory loaded"})
}

// domainHTTPError maps the inventory error kinds onto HTTP statuses. The
// kinds stay distinct all the way to the response so API callers can
// discriminate them the same way library callers do.
func domainHTTPError(err error) error {
	switch {
	case errors.Is(err, inventory.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, inventory.ErrItemNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, inventory.ErrInsufficientQuantity):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, inventory.ErrParse), errors.Is(err, inventory.ErrIO):
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return err
}
