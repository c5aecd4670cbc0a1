package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Haval-Sadun/mealmaster-m/internal/models"
)

// ListEnums returns every enum registry with values and labels, for client
// dropdowns and validation.
func ListEnums(c *gin.Context) {
	respondSuccess(c, http.StatusOK, models.EnumRegistry())
}
