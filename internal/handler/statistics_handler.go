package handler

import (
	"net/http"

	"ecycle/internal/middleware"
	"ecycle/internal/model"
	"ecycle/internal/service"
	"ecycle/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/statistics/overview", middleware.RequireRole(model.RoleAdmin), h.GetOverview)
}

// GetOverview handles GET /api/statistics/overview
// @Summary      Operational overview
// @Description  Returns request counts by status, pending confirmations and total credited value
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.OverviewResponse}
// @Router       /api/statistics/overview [get]
func (h *StatisticsHandler) GetOverview(c *gin.Context) {
	overview, err := h.statisticsService.GetOverview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, overview))
}
