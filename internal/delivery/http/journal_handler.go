package http

import (
	"net/http"
	"strconv"

	"github.com/kengni1234/kengni-finance-v2/internal/dto"
	"github.com/kengni1234/kengni-finance-v2/internal/service"
	"github.com/kengni1234/kengni-finance-v2/pkg/logger"

	"github.com/labstack/echo/v4"
)

const defaultJournalLimit = 100

// JournalHandler handles HTTP requests for the trading journal.
type JournalHandler struct {
	journalService service.Journal
	logger         *logger.Logger
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalService service.Journal, logger *logger.Logger) *JournalHandler {
	return &JournalHandler{journalService: journalService, logger: logger}
}

// RegisterRoutes registers the journal routes to the Echo group.
func (h *JournalHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/journal", h.CreateEntry)
	g.GET("/users/:id/journal", h.GetEntries)
}

// CreateEntry godoc
// @Summary Add a journal entry
// @Description Record a trading journal entry with optional emotion notes
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entry  body    dto.CreateJournalEntryRequest   true    "Entry to create"
// @Success 201 {object} entity.JournalEntry
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /journal [post]
func (h *JournalHandler) CreateEntry(c echo.Context) error {
	var req dto.CreateJournalEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.UserID == 0 || req.Symbol == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id and symbol are required"})
	}

	entry, err := h.journalService.Create(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, entry)
}

// GetEntries godoc
// @Summary List journal entries
// @Description Get the user's most recent journal entries
// @Tags journal
// @Produce  json
// @Param   id  path    int true    "User ID"
// @Success 200 {array} entity.JournalEntry
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id}/journal [get]
func (h *JournalHandler) GetEntries(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	entries, err := h.journalService.List(c.Request().Context(), uint(userID), defaultJournalLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, entries)
}
