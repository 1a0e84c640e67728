package http

import (
	"net/http"
	"strconv"

	"github.com/kengni1234/kengni-finance-v2/internal/dto"
	"github.com/kengni1234/kengni-finance-v2/internal/service"
	"github.com/kengni1234/kengni-finance-v2/pkg/logger"

	"github.com/labstack/echo/v4"
)

// FinanceHandler handles HTTP requests for the personal finance ledger and
// reports.
type FinanceHandler struct {
	financeService service.Finance
	logger         *logger.Logger
}

// NewFinanceHandler creates a new FinanceHandler.
func NewFinanceHandler(financeService service.Finance, logger *logger.Logger) *FinanceHandler {
	return &FinanceHandler{financeService: financeService, logger: logger}
}

// RegisterRoutes registers the finance routes to the Echo group.
func (h *FinanceHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/finances", h.AddTransaction)
	g.GET("/users/:id/finances/summary", h.GetSummary)
	g.POST("/users/:id/reports", h.GenerateReport)
	g.GET("/users/:id/reports", h.GetReports)
}

// AddTransaction godoc
// @Summary Record a financial transaction
// @Description Add a ledger entry; large amounts raise an alert
// @Tags finances
// @Accept  json
// @Produce  json
// @Param   transaction  body    dto.AddTransactionRequest   true    "Transaction to record"
// @Success 201 {object} entity.FinancialTransaction
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finances [post]
func (h *FinanceHandler) AddTransaction(c echo.Context) error {
	var req dto.AddTransactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.UserID == 0 || req.Type == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id and type are required"})
	}

	transaction, err := h.financeService.AddTransaction(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, transaction)
}

// GetSummary godoc
// @Summary Get the 30-day financial summary
// @Description Rolling revenue/expense overview with derived ratios
// @Tags finances
// @Produce  json
// @Param   id  path    int true    "User ID"
// @Success 200 {object} dto.FinanceSummary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id}/finances/summary [get]
func (h *FinanceHandler) GetSummary(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	summary, err := h.financeService.Summary(c.Request().Context(), uint(userID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, summary)
}

// GenerateReport godoc
// @Summary Generate a financial report
// @Description Aggregate a period and attach the automatic analysis
// @Tags finances
// @Accept  json
// @Produce  json
// @Param   id      path    int                        true    "User ID"
// @Param   report  body    dto.GenerateReportRequest  true    "Report period"
// @Success 201 {object} dto.GenerateReportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id}/reports [post]
func (h *FinanceHandler) GenerateReport(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	var req dto.GenerateReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Start.IsZero() || req.End.IsZero() || req.End.Before(req.Start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start and end must form a valid period"})
	}

	resp, err := h.financeService.GenerateReport(c.Request().Context(), uint(userID), req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, resp)
}

// GetReports godoc
// @Summary List reports
// @Description Get the user's generated reports
// @Tags finances
// @Produce  json
// @Param   id  path    int true    "User ID"
// @Success 200 {array} entity.Report
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id}/reports [get]
func (h *FinanceHandler) GetReports(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	reports, err := h.financeService.Reports(c.Request().Context(), uint(userID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, reports)
}
