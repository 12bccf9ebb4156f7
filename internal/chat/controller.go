package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskoraClient/internal/models"
	"taskoraClient/internal/poll"
	"taskoraClient/internal/services"
)

const (
	defaultMessageInterval = 10 * time.Second
	defaultUnreadInterval  = 30 * time.Second
	messagePageSize        = 50
)

// Controller holds the chat screen state: the active conversation's
// messages kept fresh by a silent poll, and the notification bell's
// unread count on its own slower poll.
type Controller struct {
	chats         *services.ChatService
	notifications *services.NotificationService
	log           poll.Logger

	messageSource poll.Source
	unreadSource  poll.Source

	mu             sync.Mutex
	conversationID int
	messages       []models.Message
	conversations  []models.Conversation
	loading        bool
	unreadTotal    int

	msgPoller  *poll.Poller
	bellPoller *poll.Poller
}

type Option func(*Controller)

// WithSources overrides the default interval timers, e.g. with a
// websocket push source or a fast timer in tests.
func WithSources(messages, unread poll.Source) Option {
	return func(c *Controller) {
		if messages != nil {
			c.messageSource = messages
		}
		if unread != nil {
			c.unreadSource = unread
		}
	}
}

func NewController(chats *services.ChatService, notifications *services.NotificationService, log poll.Logger, opts ...Option) *Controller {
	c := &Controller{
		chats:         chats,
		notifications: notifications,
		log:           log,
		messageSource: poll.IntervalSource{Interval: defaultMessageInterval},
		unreadSource:  poll.IntervalSource{Interval: defaultUnreadInterval},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open switches to a conversation: the previous poll loop is torn down,
// an immediate visible load runs, then the silent refresh loop starts.
func (c *Controller) Open(ctx context.Context, conversationID int) error {
	c.mu.Lock()
	if c.msgPoller != nil {
		c.msgPoller.Stop()
	}
	c.conversationID = conversationID
	c.messages = nil

	poller := poll.New(
		c.messageSource,
		func(ctx context.Context) error { return c.refreshMessages(ctx, conversationID, true) },
		c.log,
		poll.WithInitial(func(ctx context.Context) error { return c.refreshMessages(ctx, conversationID, false) }),
	)
	c.msgPoller = poller
	c.mu.Unlock()

	return poller.Start(ctx)
}

// refreshMessages re-fetches the active thread. Background ticks pass
// silent=true so the loading flag never flickers mid-conversation.
func (c *Controller) refreshMessages(ctx context.Context, conversationID int, silent bool) error {
	if !silent {
		c.mu.Lock()
		c.loading = true
		c.mu.Unlock()
	}
	defer func() {
		if !silent {
			c.mu.Lock()
			c.loading = false
			c.mu.Unlock()
		}
	}()

	messages, err := c.chats.Messages(ctx, conversationID, 1, messagePageSize)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.conversationID != conversationID {
		// The user already switched away; this snapshot is for a
		// thread no longer on screen.
		c.mu.Unlock()
		return nil
	}
	c.messages = messages
	// The thread is on screen now, so its unread counter drops to zero
	// locally; the server is told asynchronously below.
	c.zeroUnreadLocked(conversationID)
	c.mu.Unlock()

	c.markReadAsync(ctx, conversationID)
	return nil
}

// zeroUnreadLocked clears the cached unread counter for one thread.
// Callers hold c.mu.
func (c *Controller) zeroUnreadLocked(conversationID int) {
	for i := range c.conversations {
		if c.conversations[i].ID == conversationID {
			c.conversations[i].Unread = 0
		}
	}
}

// Conversations fetches the conversation list. The open thread's
// counter reads zero even when the fetch races the in-flight
// mark-read, so a read thread never flashes back to unread.
func (c *Controller) Conversations(ctx context.Context) ([]models.Conversation, error) {
	list, err := c.chats.Conversations(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.conversations = list
	if c.conversationID != 0 {
		c.zeroUnreadLocked(c.conversationID)
	}
	result := make([]models.Conversation, len(c.conversations))
	copy(result, c.conversations)
	c.mu.Unlock()
	return result, nil
}

// markReadAsync is fire-and-forget: the local unread counter is zeroed
// without waiting for the server to confirm.
func (c *Controller) markReadAsync(ctx context.Context, conversationID int) {
	go func() {
		if err := c.chats.MarkRead(ctx, conversationID); err != nil {
			c.log.Errorf("chat: mark read: %v", err)
		}
	}()
}

// Send posts the message and appends the server's copy locally, so the
// sender sees it before the next poll tick. The client id lets a poll
// racing the send response not produce a duplicate entry.
func (c *Controller) Send(ctx context.Context, text string) (models.Message, error) {
	c.mu.Lock()
	conversationID := c.conversationID
	c.mu.Unlock()

	req := models.SendMessageRequest{
		ConversationID: conversationID,
		Text:           text,
		ClientID:       uuid.NewString(),
	}
	message, err := c.chats.Send(ctx, req)
	if err != nil {
		return models.Message{}, err
	}

	c.mu.Lock()
	if c.conversationID == conversationID && !c.hasMessage(message) {
		c.messages = append(c.messages, message)
	}
	c.mu.Unlock()
	return message, nil
}

func (c *Controller) hasMessage(message models.Message) bool {
	for _, m := range c.messages {
		if m.ID == message.ID {
			return true
		}
		if message.ClientID != "" && m.ClientID == message.ClientID {
			return true
		}
	}
	return false
}

// StartBell begins the unread-count poll for the notification bell.
func (c *Controller) StartBell(ctx context.Context) error {
	c.mu.Lock()
	if c.bellPoller != nil {
		c.bellPoller.Stop()
	}
	poller := poll.New(c.unreadSource, c.refreshUnread, c.log)
	c.bellPoller = poller
	c.mu.Unlock()

	return poller.Start(ctx)
}

func (c *Controller) refreshUnread(ctx context.Context) error {
	count, err := c.notifications.UnreadCount(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.unreadTotal = count
	c.mu.Unlock()
	return nil
}

// Close stops all poll loops.
func (c *Controller) Close() {
	c.mu.Lock()
	msg, bell := c.msgPoller, c.bellPoller
	c.msgPoller, c.bellPoller = nil, nil
	c.conversationID = 0
	c.mu.Unlock()

	if msg != nil {
		msg.Stop()
	}
	if bell != nil {
		bell.Stop()
	}
}

type Snapshot struct {
	ConversationID int
	Messages       []models.Message
	Conversations  []models.Conversation
	Loading        bool
	UnreadTotal    int
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	messages := make([]models.Message, len(c.messages))
	copy(messages, c.messages)
	conversations := make([]models.Conversation, len(c.conversations))
	copy(conversations, c.conversations)
	return Snapshot{
		ConversationID: c.conversationID,
		Messages:       messages,
		Conversations:  conversations,
		Loading:        c.loading,
		UnreadTotal:    c.unreadTotal,
	}
}
