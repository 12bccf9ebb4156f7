package stubapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"taskoraClient/internal/models"
)

func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	conversations := append([]models.Conversation(nil), s.conversations[callerID(r)]...)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, envelope[models.Conversation]{
		Results: conversations,
		Total:   len(conversations),
	})
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := getIntParam(r, "id")
	if conversationID <= 0 {
		s.jsonError(w, "Invalid conversation ID", http.StatusBadRequest)
		return
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	pageSize, err := strconv.Atoi(r.URL.Query().Get("page_size"))
	if err != nil || pageSize <= 0 {
		pageSize = 50
	}

	s.mu.Lock()
	all, ok := s.messages[conversationID]
	messages := append([]models.Message(nil), all...)
	s.mu.Unlock()

	if !ok {
		s.jsonError(w, "conversation not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, newEnvelope(messages, page, pageSize))
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := getIntParam(r, "id")
	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.jsonError(w, "text is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if _, ok := s.messages[conversationID]; !ok {
		s.mu.Unlock()
		s.jsonError(w, "conversation not found", http.StatusNotFound)
		return
	}

	message := models.Message{
		ID:             s.id(),
		ConversationID: conversationID,
		SenderID:       callerID(r),
		Text:           req.Text,
		ClientID:       req.ClientID,
		CreatedAt:      time.Now().UTC(),
	}
	s.messages[conversationID] = append(s.messages[conversationID], message)

	// Bump the peer's conversation preview and unread counter.
	for userID, conversations := range s.conversations {
		for i := range conversations {
			if conversations[i].ID == conversationID {
				conversations[i].LastMessage = message.Text
				conversations[i].LastMessageAt = message.CreatedAt
				if userID != message.SenderID {
					conversations[i].Unread++
					s.notifications = append(s.notifications, models.Notification{
						ID: s.id(), UserID: userID, Type: models.NotificationNewMessage,
						Title: "New message", EntityID: conversationID, CreatedAt: message.CreatedAt,
					})
				}
			}
		}
		s.conversations[userID] = conversations
	}
	s.mu.Unlock()

	s.broadcast("message")
	s.writeJSON(w, http.StatusCreated, message)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	conversationID := getIntParam(r, "id")
	caller := callerID(r)

	s.mu.Lock()
	for i := range s.messages[conversationID] {
		if s.messages[conversationID][i].SenderID != caller {
			s.messages[conversationID][i].Read = true
		}
	}
	conversations := s.conversations[caller]
	for i := range conversations {
		if conversations[i].ID == conversationID {
			conversations[i].Unread = 0
		}
	}
	s.conversations[caller] = conversations
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)
	caller := callerID(r)

	s.mu.Lock()
	mine := make([]models.Notification, 0)
	for _, n := range s.notifications {
		if n.UserID == caller {
			mine = append(mine, n)
		}
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, newEnvelope(mine, q.Page, q.Limit))
}

func (s *Server) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	caller := callerID(r)

	s.mu.Lock()
	count := 0
	for _, n := range s.notifications {
		if n.UserID == caller && !n.Read {
			count++
		}
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, models.UnreadCount{Count: count})
}

func (s *Server) handleReadNotification(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			now := time.Now().UTC()
			s.notifications[i].Read = true
			s.notifications[i].ReadAt = &now
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	s.jsonError(w, "notification not found", http.StatusNotFound)
}

func (s *Server) handleReadAll(w http.ResponseWriter, r *http.Request) {
	caller := callerID(r)

	s.mu.Lock()
	now := time.Now().UTC()
	for i := range s.notifications {
		if s.notifications[i].UserID == caller {
			s.notifications[i].Read = true
			s.notifications[i].ReadAt = &now
		}
	}
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.errorLog.Printf("websocket upgrade: %v", err)
		return
	}

	s.wsMu.Lock()
	s.wsClients[conn] = struct{}{}
	s.wsMu.Unlock()

	go func() {
		defer func() {
			s.wsMu.Lock()
			delete(s.wsClients, conn)
			s.wsMu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
