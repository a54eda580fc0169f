package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velia-fin/ledgercore/internal/apperrors"
	portssvc "github.com/velia-fin/ledgercore/internal/core/ports/services"
	"github.com/velia-fin/ledgercore/internal/core/services"
	"github.com/velia-fin/ledgercore/internal/dto"
	"github.com/velia-fin/ledgercore/internal/middleware"
)

// assetHandler handles HTTP requests for fixed assets and depreciation runs.
type assetHandler struct {
	assetService portssvc.AssetSvcFacade
}

func newAssetHandler(as portssvc.AssetSvcFacade) *assetHandler {
	return &assetHandler{assetService: as}
}

// registerAssetRoutes registers routes related to fixed assets.
func registerAssetRoutes(rg *gin.RouterGroup, assetService portssvc.AssetSvcFacade) {
	h := newAssetHandler(assetService)

	assets := rg.Group("/assets")
	{
		assets.POST("", h.registerAsset)
		assets.GET("", h.listAssets)
		assets.GET("/:assetID", h.getAsset)
		assets.POST("/:assetID/dispose", h.disposeAsset)
	}
	rg.POST("/depreciation/run", h.runDepreciation)
}

// registerAsset creates the asset and its acquisition entry.
func (h *assetHandler) registerAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for registerAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorIDFromContext(c)

	asset, err := h.assetService.RegisterAsset(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBadAssetAmounts), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Asset validation failed", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrUnknownAccount):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to register asset", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register asset"})
		}
		return
	}

	logger.Info("Asset registered", slog.String("asset_id", asset.AssetID))
	c.JSON(http.StatusCreated, dto.ToAssetResponse(asset))
}

// getAsset retrieves one asset by ID.
func (h *assetHandler) getAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assetID := c.Param("assetID")

	asset, err := h.assetService.GetAsset(c.Request.Context(), assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		} else {
			logger.Error("Failed to get asset", slog.String("error", err.Error()), slog.String("asset_id", assetID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// listAssets retrieves all assets.
func (h *assetHandler) listAssets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	assets, err := h.assetService.ListAssets(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list assets", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list assets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": dto.ToAssetResponses(assets)})
}

// disposeAsset flips an asset to DISPOSED.
func (h *assetHandler) disposeAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assetID := c.Param("assetID")

	actorID, _ := middleware.GetActorIDFromContext(c)

	err := h.assetService.DisposeAsset(c.Request.Context(), assetID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		case errors.Is(err, services.ErrAssetDisposed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to dispose asset", slog.String("error", err.Error()), slog.String("asset_id", assetID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dispose asset"})
		}
		return
	}

	logger.Info("Asset disposed", slog.String("asset_id", assetID))
	c.Status(http.StatusNoContent)
}

// runDepreciation posts the consolidated monthly depreciation entries.
func (h *assetHandler) runDepreciation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RunDepreciationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for runDepreciation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, _ := middleware.GetActorIDFromContext(c)

	result, err := h.assetService.RunMonthlyDepreciation(c.Request.Context(), req.Year, time.Month(req.Month), actorID)
	if err != nil {
		logger.Error("Failed to run depreciation", slog.String("error", err.Error()), slog.Int("year", req.Year), slog.Int("month", req.Month))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run depreciation"})
		return
	}

	logger.Info("Depreciation run completed", slog.Int("assets_charged", result.AssetsCharged))
	c.JSON(http.StatusOK, result)
}
