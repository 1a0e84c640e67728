package http

import (
	"net/http"
	"strconv"

	"github.com/kengni1234/kengni-finance-v2/internal/service"
	"github.com/kengni1234/kengni-finance-v2/pkg/logger"

	"github.com/labstack/echo/v4"
)

const defaultInsightLimit = 50

// AnalysisHandler handles HTTP requests for the analysis engine: pattern
// detection, trader score and persisted insights.
type AnalysisHandler struct {
	detector       service.PatternDetector
	scoreService   service.TraderScore
	financeService service.Finance
	logger         *logger.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(
	detector service.PatternDetector,
	scoreService service.TraderScore,
	financeService service.Finance,
	logger *logger.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		detector:       detector,
		scoreService:   scoreService,
		financeService: financeService,
		logger:         logger,
	}
}

// RegisterRoutes registers the analysis routes to the Echo group.
func (h *AnalysisHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/users/:id/analysis/patterns", h.DetectPatterns)
	g.GET("/users/:id/analysis/score", h.CalculateScore)
	g.GET("/users/:id/analysis/score/latest", h.GetLatestScore)
	g.GET("/users/:id/insights", h.GetInsights)
}

// DetectPatterns godoc
// @Summary Detect psychological patterns
// @Description Run the pattern detector over the user's recent activity
// @Tags analysis
// @Produce  json
// @Param   id  path    int true    "User ID"
// @Success 200 {array} dto.PatternFinding
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id}/analysis/patterns [get]
func (h *AnalysisHandler) DetectPatterns(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	findings, err := h.detector.Detect(c.Request().Context(), uint(userID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, findings)
}

// CalculateScore godoc
// @Summary Calculate the trader score
// @Description Recompute the composite score and persist a snapshot
// @Tags analysis
// @Produce  json
// @Param   id  path    int true    "User ID"
// @Success 200 {object} dto.ScoreBreakdown
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id}/analysis/score [get]
func (h *AnalysisHandler) CalculateScore(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	breakdown, err := h.scoreService.Calculate(c.Request().Context(), uint(userID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, breakdown)
}

// GetLatestScore godoc
// @Summary Get the latest trader score
// @Description Serve the cached or last persisted score snapshot
// @Tags analysis
// @Produce  json
// @Param   id  path    int true    "User ID"
// @Success 200 {object} dto.ScoreBreakdown
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id}/analysis/score/latest [get]
func (h *AnalysisHandler) GetLatestScore(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	breakdown, err := h.scoreService.Latest(c.Request().Context(), uint(userID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, breakdown)
}

// GetInsights godoc
// @Summary List analysis insights
// @Description Get the user's most recent persisted analysis payloads
// @Tags analysis
// @Produce  json
// @Param   id  path    int true    "User ID"
// @Success 200 {array} entity.Insight
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id}/insights [get]
func (h *AnalysisHandler) GetInsights(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	insights, err := h.financeService.Insights(c.Request().Context(), uint(userID), defaultInsightLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, insights)
}
