package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/velia-fin/ledgercore/internal/core/domain"
	portssvc "github.com/velia-fin/ledgercore/internal/core/ports/services"
	"github.com/velia-fin/ledgercore/internal/middleware"
	"github.com/velia-fin/ledgercore/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.ActorIdentityMiddleware())

	registerAccountRoutes(v1, services.Account)
	registerJournalRoutes(v1, services.Journal)
	registerReportingRoutes(v1, services.Reporting)
	registerInventoryRoutes(v1, services.Inventory)
	registerAssetRoutes(v1, services.Asset)
	registerReconciliationRoutes(v1, services.Reconciliation)
}

// registerCustomValidators wires domain enums into binding validation.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("accountnature", func(fl validator.FieldLevel) bool {
		switch domain.AccountNature(fl.Field().String()) {
		case domain.DebitNature, domain.CreditNature:
			return true
		}
		return false
	})

	_ = v.RegisterValidation("movementkind", func(fl validator.FieldLevel) bool {
		switch domain.MovementKind(fl.Field().String()) {
		case domain.MovementPurchase, domain.MovementSale,
			domain.MovementAdjustPositive, domain.MovementAdjustNegative:
			return true
		}
		return false
	})
}
