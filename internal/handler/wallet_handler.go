package handler

import (
	"net/http"

	"ecycle/internal/middleware"
	"ecycle/internal/model"
	"ecycle/internal/service"
	"ecycle/pkg/response"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	walletService service.WalletService
}

func NewWalletHandler(walletService service.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

func (h *WalletHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/api/users")
	users.Use(middleware.RequireRole(model.RoleRequester, model.RoleAdmin))
	{
		users.GET("/:id/wallet", h.GetWallet)
		users.GET("/:id/transactions", h.ListTransactions)
	}
}

// GetWallet handles GET /api/users/:id/wallet
// @Summary      Get a user's wallet
// @Description  Returns the wallet balance; users without a wallet read as zero
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=service.WalletResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/users/{id}/wallet [get]
func (h *WalletHandler) GetWallet(c *gin.Context) {
	result, err := h.walletService.GetWallet(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ListTransactions handles GET /api/users/:id/transactions
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	results, err := h.walletService.ListTransactions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, results))
}
