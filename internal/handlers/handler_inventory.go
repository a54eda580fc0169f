package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velia-fin/ledgercore/internal/apperrors"
	portssvc "github.com/velia-fin/ledgercore/internal/core/ports/services"
	"github.com/velia-fin/ledgercore/internal/core/services"
	"github.com/velia-fin/ledgercore/internal/dto"
	"github.com/velia-fin/ledgercore/internal/middleware"
)

// inventoryHandler handles HTTP requests for the inventory sub-ledger.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is}
}

// registerInventoryRoutes registers routes related to inventory items.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	items := rg.Group("/items")
	{
		items.POST("", h.createItem)
		items.GET("", h.listItems)
		items.GET("/:itemID", h.getItem)
		items.POST("/:itemID/movements", h.applyMovement)
		items.GET("/:itemID/movements", h.getKardex)
	}
}

// createItem registers one SKU with zero stock.
func (h *inventoryHandler) createItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorIDFromContext(c)

	item, err := h.inventoryService.CreateItem(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateSKU) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create item", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		}
		return
	}

	logger.Info("Item created", slog.String("item_id", item.ItemID), slog.String("sku", item.SKU))
	c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

// getItem retrieves one item's costing state.
func (h *inventoryHandler) getItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("itemID")

	item, err := h.inventoryService.GetItem(c.Request.Context(), itemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		} else {
			logger.Error("Failed to get item", slog.String("error", err.Error()), slog.String("item_id", itemID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve item"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// listItems retrieves all items.
func (h *inventoryHandler) listItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	items, err := h.inventoryService.ListItems(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list items", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list items"})
		return
	}

	responses := make([]dto.ItemResponse, len(items))
	for i := range items {
		responses[i] = dto.ToItemResponse(&items[i])
	}
	c.JSON(http.StatusOK, gin.H{"items": responses})
}

// applyMovement applies one inventory movement and returns the updated item.
func (h *inventoryHandler) applyMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("itemID")
	var req dto.ApplyMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for applyMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorIDFromContext(c)

	item, err := h.inventoryService.ApplyMovement(c.Request.Context(), itemID, req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case errors.Is(err, services.ErrInsufficientStock):
			logger.Warn("Insufficient stock", slog.String("item_id", itemID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrBadMovement),
			errors.Is(err, services.ErrHalfMirror),
			errors.Is(err, services.ErrUnknownAccount),
			errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Movement validation failed", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to apply movement", slog.String("error", err.Error()), slog.String("item_id", itemID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply movement"})
		}
		return
	}

	logger.Info("Movement applied", slog.String("item_id", itemID), slog.String("kind", req.Kind))
	c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

// getKardex retrieves the item's movement history.
func (h *inventoryHandler) getKardex(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("itemID")

	movements, err := h.inventoryService.GetKardex(c.Request.Context(), itemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		} else {
			logger.Error("Failed to get kardex", slog.String("error", err.Error()), slog.String("item_id", itemID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve movements"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"movements": dto.ToMovementResponses(movements)})
}
