package handlers

import (
	"net/http"
	"strconv"

	"mavuso/internal/domain/models"
	"mavuso/internal/http/middleware"
	"mavuso/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/messages (auth)
func SendMessage(c *gin.Context) {
	var in models.MessageInput
	if !BindJSONOrError(c, &in) {
		return
	}

	svc := services.MessageService{RequestID: middleware.GetRequestID(c)}
	msg, err := svc.Send(middleware.CurrentUserID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": msg})
}

// GET /api/messages/conversations (auth)
func GetConversations(c *gin.Context) {
	svc := services.MessageService{RequestID: middleware.GetRequestID(c)}
	conversations, err := svc.Conversations(middleware.CurrentUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "conversations": conversations})
}

// GET /api/messages/:id (auth, participant only)
// Fetching also marks the other party's messages read.
func GetConversationMessages(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid conversation id", nil)
		return
	}

	svc := services.MessageService{RequestID: middleware.GetRequestID(c)}
	messages, err := svc.ConversationMessages(middleware.CurrentUserID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "messages": messages})
}
