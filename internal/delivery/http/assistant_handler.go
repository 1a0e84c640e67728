package http

import (
	"net/http"

	"github.com/kengni1234/kengni-finance-v2/internal/dto"
	"github.com/kengni1234/kengni-finance-v2/internal/service"
	"github.com/kengni1234/kengni-finance-v2/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AssistantHandler handles HTTP requests for the conversational assistant.
type AssistantHandler struct {
	assistantService service.Assistant
	logger           *logger.Logger
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(assistantService service.Assistant, logger *logger.Logger) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService, logger: logger}
}

// RegisterRoutes registers the assistant routes to the Echo group.
func (h *AssistantHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/assistant/chat", h.Chat)
}

// Chat godoc
// @Summary Ask the assistant
// @Description Answer a free-text question about the user's trading and finances
// @Tags assistant
// @Accept  json
// @Produce  json
// @Param   question  body    dto.ChatRequest   true    "Question"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /assistant/chat [post]
func (h *AssistantHandler) Chat(c echo.Context) error {
	var req dto.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.UserID == 0 || req.Question == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id and question are required"})
	}

	resp, err := h.assistantService.Ask(c.Request().Context(), req.UserID, req.Question)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, resp)
}
