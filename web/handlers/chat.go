package handlers

import (
	"context"
	"net/http"
	"strings"

	"hostel-agent/history"
	"hostel-agent/web/format"
	"hostel-agent/web/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Responder produces one reply per user message; implemented by the composer.
type Responder interface {
	Respond(ctx context.Context, message string) string
}

type ChatHandler struct {
	bot     Responder
	history *history.Manager
	logger  *zap.Logger
}

type ChatRequest struct {
	Message string `json:"message" form:"message"`
}

// ChatResponse returns the full updated history plus the value the input box
// should be reset to (always empty).
type ChatResponse struct {
	Messages []types.ChatMessage `json:"messages"`
	Reset    string              `json:"reset"`
}

func NewChatHandler(bot Responder, hist *history.Manager, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		bot:     bot,
		history: hist,
		logger:  logger,
	}
}

func (h *ChatHandler) Index(c *gin.Context) {
	c.File("./web/static/index.html")
}

// History returns the session's conversation so the page can restore it on
// reload.
func (h *ChatHandler) History(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(uuid.UUID)
	c.JSON(http.StatusOK, ChatResponse{Messages: h.history.Get(sessionID), Reset: ""})
}

// SendMessage appends the user turn and the composed assistant turn to the
// session history. A blank message returns the history unchanged and only
// resets the input box.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(uuid.UUID)

	var req ChatRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Error("Failed to bind chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusOK, ChatResponse{Messages: h.history.Get(sessionID), Reset: ""})
		return
	}

	h.logger.Info("Processing chat message",
		zap.String("session_id", sessionID.String()),
		zap.String("message", req.Message))

	reply := h.bot.Respond(c.Request.Context(), req.Message)

	h.history.Append(sessionID, types.ChatMessage{
		ID:      uuid.New().String(),
		Role:    "user",
		Content: req.Message,
	})
	h.history.Append(sessionID, types.ChatMessage{
		ID:      uuid.New().String(),
		Role:    "assistant",
		Content: reply,
		HTML:    format.RenderMessage(reply),
	})

	c.JSON(http.StatusOK, ChatResponse{Messages: h.history.Get(sessionID), Reset: ""})
}

// ClearSession empties the conversation history for the session.
func (h *ChatHandler) ClearSession(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(uuid.UUID)
	h.history.Reset(sessionID)
	c.JSON(http.StatusOK, ChatResponse{Messages: []types.ChatMessage{}, Reset: ""})
}
