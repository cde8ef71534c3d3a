package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teamfit-api/internal/middleware"
	"github.com/noah-isme/teamfit-api/internal/models"
	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
	"github.com/noah-isme/teamfit-api/pkg/response"
)

// pathID parses a positive integer path parameter. On failure the error
// response is already written and ok is false.
func pathID(c *gin.Context, key string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(key)), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid "+key))
		return 0, false
	}
	return id, true
}

// queryID parses an optional positive integer query parameter; missing means 0.
func queryID(c *gin.Context, key string) (int64, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid "+key))
		return 0, false
	}
	return id, true
}

func listFilter(c *gin.Context) models.ListFilter {
	filter := models.ListFilter{Search: c.Query("search")}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	return filter
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

func actorOf(c *gin.Context) string {
	return middleware.ActorFrom(c)
}
