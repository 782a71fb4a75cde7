package handlers

import (
	"net/http"

	portssvc "github.com/borport/borport_backend/internal/core/ports/services"
	"github.com/borport/borport_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type financeHandler struct {
	financeService portssvc.FinanceSvcFacade
}

func newFinanceHandler(fs portssvc.FinanceSvcFacade) *financeHandler {
	return &financeHandler{financeService: fs}
}

func registerGuideFinanceRoutes(guide *gin.RouterGroup, h *financeHandler) {
	guide.GET("/finance", h.getFinance)
	guide.POST("/withdraw", h.requestWithdrawal)
	guide.GET("/withdrawals", h.listMyWithdrawals)
}

func registerAdminFinanceRoutes(admin *gin.RouterGroup, h *financeHandler) {
	admin.GET("/withdrawals", h.listWithdrawals)
	admin.PUT("/withdrawals/:id", h.processWithdrawal)
}

// getFinance godoc
// @Summary Guide balance and ledger
// @Tags guide
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.FinanceSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /guide/finance [get]
func (h *financeHandler) getFinance(c *gin.Context) {
	var params dto.FinanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	guideID, ok := currentUser(c)
	if !ok {
		return
	}
	finance, err := h.financeService.GetBalance(c.Request.Context(), guideID)
	if err != nil {
		respondError(c, err, "Failed to retrieve balance")
		return
	}
	txns, next, err := h.financeService.ListTransactions(c.Request.Context(), guideID, params)
	if err != nil {
		respondError(c, err, "Failed to retrieve transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToFinanceSummaryResponse(finance, txns, next))
}

// requestWithdrawal godoc
// @Summary Request a withdrawal
// @Description Debits the balance and stores a PENDING withdrawal. Amount must be positive and covered by the balance.
// @Tags guide
// @Accept json
// @Produce json
// @Param withdrawal body dto.CreateWithdrawalRequest true "Withdrawal"
// @Success 200 {object} dto.WithdrawalResponse
// @Failure 400 {object} ErrorResponse "Invalid input or insufficient balance"
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /guide/withdraw [post]
func (h *financeHandler) requestWithdrawal(c *gin.Context) {
	var req dto.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	guideID, ok := currentUser(c)
	if !ok {
		return
	}
	w, err := h.financeService.RequestWithdrawal(c.Request.Context(), guideID, req)
	if err != nil {
		respondError(c, err, "Failed to create withdrawal")
		return
	}
	c.JSON(http.StatusOK, dto.ToWithdrawalResponse(w))
}

// listMyWithdrawals godoc
// @Summary The caller's withdrawals
// @Tags guide
// @Produce json
// @Success 200 {array} dto.WithdrawalResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /guide/withdrawals [get]
func (h *financeHandler) listMyWithdrawals(c *gin.Context) {
	guideID, ok := currentUser(c)
	if !ok {
		return
	}
	ws, err := h.financeService.ListGuideWithdrawals(c.Request.Context(), guideID)
	if err != nil {
		respondError(c, err, "Failed to list withdrawals")
		return
	}
	c.JSON(http.StatusOK, dto.ToWithdrawalListResponse(ws))
}

// listWithdrawals godoc
// @Summary All withdrawals
// @Description Pending and processed withdrawals, newest first.
// @Tags admin
// @Produce json
// @Success 200 {object} dto.AdminWithdrawalsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/withdrawals [get]
func (h *financeHandler) listWithdrawals(c *gin.Context) {
	pending, processed, err := h.financeService.ListWithdrawalsForAdmin(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list withdrawals")
		return
	}
	c.JSON(http.StatusOK, dto.AdminWithdrawalsResponse{
		Pending:   dto.ToWithdrawalListResponse(pending),
		Processed: dto.ToWithdrawalListResponse(processed),
	})
}

// processWithdrawal godoc
// @Summary Approve or reject a withdrawal
// @Description Rejection refunds the amount to the guide's balance.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Withdrawal ID"
// @Param decision body dto.ProcessWithdrawalRequest true "Decision"
// @Success 200 {object} dto.WithdrawalResponse
// @Failure 400 {object} ErrorResponse "Invalid status or withdrawal no longer pending"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/withdrawals/{id} [put]
func (h *financeHandler) processWithdrawal(c *gin.Context) {
	var req dto.ProcessWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	adminID, ok := currentUser(c)
	if !ok {
		return
	}
	w, err := h.financeService.ProcessWithdrawal(c.Request.Context(), adminID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to process withdrawal")
		return
	}
	c.JSON(http.StatusOK, dto.ToWithdrawalResponse(w))
}
