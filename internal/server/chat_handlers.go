package server

import (
	"snapgram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetConversations handles GET /api/chat
// @Summary List the authenticated user's conversations, most recently active first
// @Tags chat
// @Produce json
// @Success 200 {array} models.Conversation
// @Security BearerAuth
// @Router /chat [get]
func (s *Server) GetConversations(c *fiber.Ctx) error {
	conversations, err := s.chatService.ListConversations(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(conversations)
}

// OpenConversation handles POST /api/chat/:userId
// @Summary Open the conversation with another user, creating it on first contact
// @Description Both participants resolve to the same conversation regardless of who opens it
// @Tags chat
// @Produce json
// @Param userId path int true "Peer user ID"
// @Success 200 {object} models.Conversation
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /chat/{userId} [post]
func (s *Server) OpenConversation(c *fiber.Ctx) error {
	peerID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	conv, err := s.chatService.FindOrCreateConversation(c.Context(), currentUserID(c), peerID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(conv)
}

// SendMessage handles POST /api/chat/:userId/send
// @Summary Send a direct message to another user
// @Tags chat
// @Accept json
// @Produce json
// @Param userId path int true "Peer user ID"
// @Param request body object{textMessage=string} true "Message content"
// @Success 201 {object} models.Message
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /chat/{userId}/send [post]
func (s *Server) SendMessage(c *fiber.Ctx) error {
	peerID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	var req struct {
		TextMessage string `json:"textMessage"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.chatService.SendMessage(c.Context(), currentUserID(c), peerID, req.TextMessage)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// GetMessagesWithUser handles GET /api/chat/:userId/messages
// @Summary Read the message history with another user in send order
// @Tags chat
// @Produce json
// @Param userId path int true "Peer user ID"
// @Param since query string false "Return only messages strictly after this RFC 3339 instant"
// @Success 200 {array} models.Message
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /chat/{userId}/messages [get]
func (s *Server) GetMessagesWithUser(c *fiber.Ctx) error {
	peerID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	since, err := s.parseSince(c)
	if err != nil {
		return nil
	}

	messages, err := s.chatService.GetMessagesWithUser(c.Context(), currentUserID(c), peerID, since)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(messages)
}

// GetMessages handles GET /api/conversations/:id/messages
// @Summary Read a conversation's messages in send order
// @Tags chat
// @Produce json
// @Param id path int true "Conversation ID"
// @Param since query string false "Return only messages strictly after this RFC 3339 instant"
// @Success 200 {array} models.Message
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /conversations/{id}/messages [get]
func (s *Server) GetMessages(c *fiber.Ctx) error {
	convID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	since, err := s.parseSince(c)
	if err != nil {
		return nil
	}

	messages, err := s.chatService.GetMessages(c.Context(), currentUserID(c), convID, since)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(messages)
}

// SendToConversation handles POST /api/conversations/:id/messages
// @Summary Send a message to an existing conversation
// @Tags chat
// @Accept json
// @Produce json
// @Param id path int true "Conversation ID"
// @Param request body object{textMessage=string} true "Message content"
// @Success 201 {object} models.Message
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /conversations/{id}/messages [post]
func (s *Server) SendToConversation(c *fiber.Ctx) error {
	convID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		TextMessage string `json:"textMessage"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.chatService.SendToConversation(c.Context(), currentUserID(c), convID, req.TextMessage)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
