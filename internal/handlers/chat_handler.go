package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/sajidk24/recipeshare/backend/internal/chat"
	"github.com/sajidk24/recipeshare/backend/internal/models"
	"github.com/sajidk24/recipeshare/backend/internal/repositories"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

// ChatHandler serves chat history, the REST send endpoint and the websocket
// relay channel
type ChatHandler struct {
	messageRepository repositories.MessageRepository
	hub               *chat.Hub
}

// NewChatHandler creates a new ChatHandler around the injected room registry
func NewChatHandler(messageRepo repositories.MessageRepository, hub *chat.Hub) *ChatHandler {
	return &ChatHandler{
		messageRepository: messageRepo,
		hub:               hub,
	}
}

// RegisterChatRoutes registers chat-related routes
func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.GET("/chat/ws", h.HandleWebSocket)
	g.GET("/chat/:userId/:otherUserId", h.GetHistory)
	g.POST("/chat", h.SendMessage)
}

// GetHistory returns all messages between two users ordered by timestamp
func (h *ChatHandler) GetHistory(c echo.Context) error {
	userID := c.Param("userId")
	otherUserID := c.Param("otherUserId")

	messages, err := h.messageRepository.GetConversation(c.Request().Context(), userID, otherUserID)
	if err != nil {
		log.Printf("chat: failed to fetch conversation %s/%s: %v", userID, otherUserID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while fetching chat messages")
	}

	return c.JSON(http.StatusOK, messages)
}

// SendMessage persists a message posted over REST
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required: sender, receiver, message.")
	}

	message := &models.Message{
		Sender:   req.Sender,
		Receiver: req.Receiver,
		Body:     req.Message,
	}
	if err := h.messageRepository.CreateMessage(c.Request().Context(), message); err != nil {
		log.Printf("chat: failed to save message: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while saving chat message")
	}

	return c.JSON(http.StatusCreated, message)
}

// HandleWebSocket upgrades the connection and attaches it to the room registry
func (h *ChatHandler) HandleWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("chat: websocket upgrade failed: %v", err)
		return err
	}

	client := chat.NewClient(h.hub, conn)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
	return nil
}
