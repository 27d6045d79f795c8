package handler

import (
	"net/http"

	"ecycle/internal/middleware"
	"ecycle/internal/model"
	"ecycle/internal/service"
	"ecycle/pkg/pagination"
	"ecycle/pkg/response"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	requestService service.RequestService
}

func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/api/requests")
	{
		// Intake boundary
		requests.POST("", middleware.RequireRole(model.RoleRequester, model.RoleAdmin), h.Submit)

		// Read boundaries
		requests.GET("/:id", middleware.RequireRole(model.RoleRequester, model.RoleAdmin, model.RoleAgent), h.GetByID)
		requests.GET("", middleware.RequireRole(model.RoleAdmin), h.List)
		requests.GET("/user/:userId", middleware.RequireRole(model.RoleRequester, model.RoleAdmin), h.ListByRequester)
		requests.GET("/assigned", middleware.RequireRole(model.RoleAgent, model.RoleAdmin), h.ListAssigned)

		// Administration boundary
		requests.PUT("/:id/approve", middleware.RequireRole(model.RoleAdmin), h.Approve)
		requests.PUT("/:id/reject", middleware.RequireRole(model.RoleAdmin), h.Reject)
		requests.PUT("/:id/schedule", middleware.RequireRole(model.RoleAdmin), h.AssignPickup)

		// Agent boundary
		requests.PUT("/:id/pickup-response", middleware.RequireRole(model.RoleAgent), h.PickupResponse)
		requests.PUT("/:id/request-completion", middleware.RequireRole(model.RoleAgent), h.RequestCompletion)
		requests.PUT("/:id/complete", middleware.RequireRole(model.RoleAgent), h.Complete)
	}
}

// Submit handles POST /api/requests to create a new pickup request
// @Summary      Submit a pickup request
// @Description  Creates a new e-waste pickup request in Pending status
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SubmitRequestDTO  true  "Request payload"
// @Success      201      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/requests [post]
func (h *RequestHandler) Submit(c *gin.Context) {
	var req service.SubmitRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.requestService.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// Approve handles PUT /api/requests/:id/approve
// @Summary      Approve a pending request
// @Description  Moves a Pending request to Approved with an allocated value range or amount
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Request ID"
// @Param        payload  body      service.ApproveRequestDTO  true  "Allocation"
// @Success      200      {object}  response.Response{data=service.RequestResponse}
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/requests/{id}/approve [put]
func (h *RequestHandler) Approve(c *gin.Context) {
	var req service.ApproveRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	result, err := h.requestService.Approve(c.Request.Context(), c.Param("id"), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Reject handles PUT /api/requests/:id/reject
func (h *RequestHandler) Reject(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		// Allow empty body — reason is optional
		req.Reason = ""
	}

	result, err := h.requestService.Reject(c.Request.Context(), c.Param("id"), currentUserID(c), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// AssignPickup handles PUT /api/requests/:id/schedule
// @Summary      Schedule a pickup
// @Description  Assigns an agent and pickup time to an Approved request; the agent has 12 hours to respond
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                   true  "Request ID"
// @Param        payload  body      service.AssignPickupDTO  true  "Agent and pickup time"
// @Success      200      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/requests/{id}/schedule [put]
func (h *RequestHandler) AssignPickup(c *gin.Context) {
	var req service.AssignPickupDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.requestService.AssignPickup(c.Request.Context(), c.Param("id"), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// PickupResponse handles PUT /api/requests/:id/pickup-response
// @Summary      Accept or decline an assigned pickup
// @Description  The assigned agent confirms the pickup or declines it, returning the request to the assignable pool
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Request ID"
// @Success      200      {object}  response.Response{data=service.RequestResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/requests/{id}/pickup-response [put]
func (h *RequestHandler) PickupResponse(c *gin.Context) {
	var req struct {
		Accept *bool `json:"accept" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "accept is required"))
		return
	}

	result, err := h.requestService.AgentRespond(c.Request.Context(), c.Param("id"), currentUserID(c), *req.Accept)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// RequestCompletion handles PUT /api/requests/:id/request-completion
func (h *RequestHandler) RequestCompletion(c *gin.Context) {
	result, err := h.requestService.RequestCompletionCode(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Complete handles PUT /api/requests/:id/complete
// @Summary      Complete a pickup
// @Description  Verifies the one-time completion code, marks the request Completed and credits the requester's wallet
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "Request ID"
// @Param        payload  body      service.VerifyCompletionDTO  true  "Code and paid amount"
// @Success      200      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/requests/{id}/complete [put]
func (h *RequestHandler) Complete(c *gin.Context) {
	var req service.VerifyCompletionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "code and amount are required"))
		return
	}

	result, err := h.requestService.VerifyCompletion(c.Request.Context(), c.Param("id"), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// GetByID handles GET /api/requests/:id
func (h *RequestHandler) GetByID(c *gin.Context) {
	result, err := h.requestService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// List handles GET /api/requests with optional status filter and paging
func (h *RequestHandler) List(c *gin.Context) {
	params := pagination.Parse(c)

	results, total, err := h.requestService.ListByStatus(c.Request.Context(), c.Query("status"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"requests": results,
		"total":    total,
		"page":     params.Page,
		"limit":    params.Limit,
	}))
}

// ListByRequester handles GET /api/requests/user/:userId
func (h *RequestHandler) ListByRequester(c *gin.Context) {
	results, err := h.requestService.ListByRequester(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, results))
}

// ListAssigned handles GET /api/requests/assigned for the calling agent
func (h *RequestHandler) ListAssigned(c *gin.Context) {
	agentID := c.Query("agentId")
	if agentID == "" {
		agentID = currentUserID(c)
	}

	results, err := h.requestService.ListByAgent(c.Request.Context(), agentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, results))
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) string {
	userID, _ := c.Get("userID")
	idStr, _ := userID.(string)
	return idStr
}
