package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHome reports the API is up.
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "ledgercore API v1"})
}
