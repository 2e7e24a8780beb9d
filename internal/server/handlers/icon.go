package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"weather-now/internal/owm"
	"weather-now/internal/server/utils"
)

type IconHandler struct {
	fetcher *owm.IconFetcher
	logger  *zap.Logger
}

func NewIconHandler(fetcher *owm.IconFetcher, logger *zap.Logger) *IconHandler {
	return &IconHandler{
		fetcher: fetcher,
		logger:  logger,
	}
}

// GetIcon serves GET /icons/:code, proxying the condition icon PNG.
func (h *IconHandler) GetIcon(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)

	code := c.Param("code")
	if !validIconCode(code) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid icon code",
			Code:    "INVALID_PARAMS",
			Details: "icon code must be alphanumeric",
		})
		return
	}

	data, err := h.fetcher.Fetch(ctx, code)
	if err != nil {
		h.logger.Warn("Icon fetch failed",
			zap.String("icon_code", code),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: "Failed to fetch icon",
			Code:  "UPSTREAM_UNREACHABLE",
		})
		return
	}

	c.Data(http.StatusOK, "image/png", data)
}

// Icon codes look like "10d"; anything outside ASCII letters and digits
// is rejected before it can reach the upstream URL.
func validIconCode(code string) bool {
	if code == "" {
		return false
	}
	for _, r := range code {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
