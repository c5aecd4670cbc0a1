package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Haval-Sadun/mealmaster-m/internal/middleware"
	"github.com/Haval-Sadun/mealmaster-m/internal/service"
)

// Every operation answers with one of two envelopes:
// success {"status":"success","data":...} or
// error   {"status":"error","message":...,"code":...,"details":...}.

func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"status": "success",
		"data":   data,
	})
}

func respondError(c *gin.Context, status int, message string, details interface{}) {
	body := gin.H{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}

// respondServiceError maps service failure kinds onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var pe *service.PersistenceError
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, service.ErrNoActivePlan):
		respondError(c, http.StatusNotFound, "no active meal plan found, create a new one please", nil)
	case errors.Is(err, service.ErrInvalidReference):
		respondError(c, http.StatusBadRequest, "referenced recipe does not exist", nil)
	case errors.Is(err, service.ErrInvalidArgument):
		respondError(c, http.StatusBadRequest, "invalid argument", nil)
	case errors.Is(err, service.ErrPlanInactive):
		respondError(c, http.StatusConflict, "the meal plan is not active, create a new one please", nil)
	case errors.As(err, &pe):
		middleware.Log(c).Error("persistence failure",
			"op", pe.Op,
			"err", pe.Err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", middleware.RequestID(c),
		)
		respondError(c, http.StatusInternalServerError, "persistence failure", pe.Error())
	default:
		middleware.Log(c).Error("unhandled error",
			"err", err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", middleware.RequestID(c),
		)
		respondError(c, http.StatusInternalServerError, "internal server error", nil)
	}
}

// idParam parses the named path parameter as an unsigned id.
func idParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id", c.Param(name))
		return 0, false
	}
	return uint(v), true
}

// queryID parses a query parameter already known to be present.
func queryID(c *gin.Context, name, raw string) (uint, bool) {
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid "+name, raw)
		return 0, false
	}
	return uint(v), true
}

// requestBaseURL rebuilds the absolute base the client reached us on, for
// image retrieval URLs.
func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if forwarded := c.GetHeader("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return scheme + "://" + c.Request.Host
}
