package http

import (
	"net/http"
	"strconv"

	"github.com/kengni1234/kengni-finance-v2/internal/dto"
	"github.com/kengni1234/kengni-finance-v2/internal/service"
	"github.com/kengni1234/kengni-finance-v2/pkg/logger"

	"github.com/labstack/echo/v4"
)

const defaultHistoryLimit = 200

// TradeHandler handles HTTP requests for trade execution and history.
type TradeHandler struct {
	tradingService service.Trading
	logger         *logger.Logger
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradingService service.Trading, logger *logger.Logger) *TradeHandler {
	return &TradeHandler{tradingService: tradingService, logger: logger}
}

// RegisterRoutes registers the trade routes to the Echo group.
func (h *TradeHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/trades", h.ExecuteTrade)
	g.GET("/users/:id/trades", h.GetTradeHistory)
	g.GET("/users/:id/positions", h.GetOpenPositions)
}

// ExecuteTrade godoc
// @Summary Execute a trade
// @Description Record a buy or sell and update the open position
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   trade  body    dto.ExecuteTradeRequest   true    "Trade to execute"
// @Success 201 {object} entity.Trade
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /trades [post]
func (h *TradeHandler) ExecuteTrade(c echo.Context) error {
	var req dto.ExecuteTradeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.UserID == 0 || req.Symbol == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id and symbol are required"})
	}

	trade, err := h.tradingService.Execute(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, trade)
}

// GetTradeHistory godoc
// @Summary Get trade history
// @Description Get the user's most recent trades
// @Tags trades
// @Produce  json
// @Param   id  path    int true    "User ID"
// @Success 200 {array} entity.Trade
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id}/trades [get]
func (h *TradeHandler) GetTradeHistory(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	trades, err := h.tradingService.History(c.Request().Context(), uint(userID), defaultHistoryLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, trades)
}

// GetOpenPositions godoc
// @Summary Get open positions
// @Description Get the user's open positions, largest exposure first
// @Tags trades
// @Produce  json
// @Param   id  path    int true    "User ID"
// @Success 200 {array} entity.Position
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id}/positions [get]
func (h *TradeHandler) GetOpenPositions(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	positions, err := h.tradingService.OpenPositions(c.Request().Context(), uint(userID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, positions)
}
