package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"taskoraClient/internal/api"
	"taskoraClient/internal/models"
	"taskoraClient/internal/services"
)

type staticToken string

func (t staticToken) Token() (string, error) { return string(t), nil }

type testLogger struct{ t *testing.T }

func (l testLogger) Infof(format string, args ...interface{})  { l.t.Logf("INFO "+format, args...) }
func (l testLogger) Errorf(format string, args ...interface{}) { l.t.Logf("ERROR "+format, args...) }

// manualSource delivers signals only when the test calls tick, so poll
// timing is fully under the test's control.
type manualSource struct {
	mu     sync.Mutex
	signal func()
}

func (s *manualSource) Subscribe(ctx context.Context, onSignal func()) (func(), error) {
	s.mu.Lock()
	s.signal = onSignal
	s.mu.Unlock()

	stop := func() {
		s.mu.Lock()
		s.signal = nil
		s.mu.Unlock()
	}
	return stop, nil
}

func (s *manualSource) tick() {
	s.mu.Lock()
	signal := s.signal
	s.mu.Unlock()
	if signal != nil {
		signal()
	}
}

// chatBackend is a minimal in-memory chat server for one conversation.
type chatBackend struct {
	mu           sync.Mutex
	nextID       int
	messages     []models.Message
	markReads    int
	unread       int
	threadUnread int
	sendGate     chan struct{}
	readGate     chan struct{}
}

func (b *chatBackend) addMessage(senderID int, text, clientID string) models.Message {
	b.nextID++
	message := models.Message{
		ID:             b.nextID,
		ConversationID: 30,
		SenderID:       senderID,
		Text:           text,
		ClientID:       clientID,
		CreatedAt:      time.Now(),
	}
	b.messages = append(b.messages, message)
	return message
}

func (b *chatBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/chats/30/messages":
			b.mu.Lock()
			results := make([]models.Message, len(b.messages))
			copy(results, b.messages)
			b.mu.Unlock()
			json.NewEncoder(w).Encode(map[string]interface{}{
				"results": results, "total": len(results), "has_more": false,
			})

		case r.Method == http.MethodPost && r.URL.Path == "/chats/30/messages":
			var req models.SendMessageRequest
			json.NewDecoder(r.Body).Decode(&req)
			b.mu.Lock()
			message := b.addMessage(1, req.Text, req.ClientID)
			gate := b.sendGate
			b.mu.Unlock()
			if gate != nil {
				<-gate
			}
			json.NewEncoder(w).Encode(message)

		case r.Method == http.MethodGet && r.URL.Path == "/chats":
			b.mu.Lock()
			conversations := []models.Conversation{
				{ID: 30, PeerID: 2, PeerName: "Daniyar", Unread: b.threadUnread},
			}
			b.mu.Unlock()
			json.NewEncoder(w).Encode(map[string]interface{}{
				"results": conversations, "total": len(conversations), "has_more": false,
			})

		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/read"):
			b.mu.Lock()
			gate := b.readGate
			b.mu.Unlock()
			if gate != nil {
				<-gate
			}
			b.mu.Lock()
			b.threadUnread = 0
			b.markReads++
			b.mu.Unlock()
			w.Write([]byte("{}"))

		case r.URL.Path == "/notifications/unread_count":
			b.mu.Lock()
			count := b.unread
			b.mu.Unlock()
			json.NewEncoder(w).Encode(models.UnreadCount{Count: count})

		default:
			http.NotFound(w, r)
		}
	})
}

func newTestController(t *testing.T, backend *chatBackend) (*Controller, *manualSource, *manualSource) {
	t.Helper()

	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.Client(), srv.URL, staticToken("test-token"))
	messages := &manualSource{}
	unread := &manualSource{}
	controller := NewController(
		&services.ChatService{API: client},
		&services.NotificationService{API: client},
		testLogger{t},
		WithSources(messages, unread),
	)
	t.Cleanup(controller.Close)
	return controller, messages, unread
}

func waitFor(t *testing.T, timeout time.Duration, check func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if check() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestOpenLoadsThenPollsSilently(t *testing.T) {
	backend := &chatBackend{}
	backend.addMessage(2, "hello", "")
	controller, messages, _ := newTestController(t, backend)

	if err := controller.Open(context.Background(), 30); err != nil {
		t.Fatalf("open: %v", err)
	}

	snap := controller.Snapshot()
	if snap.ConversationID != 30 {
		t.Fatalf("expected conversation 30, got %d", snap.ConversationID)
	}
	if len(snap.Messages) != 1 || snap.Messages[0].Text != "hello" {
		t.Fatalf("unexpected initial messages: %+v", snap.Messages)
	}
	if snap.Loading {
		t.Fatal("loading flag still set after initial fetch")
	}

	backend.mu.Lock()
	backend.addMessage(2, "are you there?", "")
	backend.mu.Unlock()

	messages.tick()
	snap = controller.Snapshot()
	if len(snap.Messages) != 2 {
		t.Fatalf("expected 2 messages after poll, got %d", len(snap.Messages))
	}
	if snap.Loading {
		t.Fatal("silent refresh must not raise the loading flag")
	}
}

func TestOpenMarksConversationRead(t *testing.T) {
	backend := &chatBackend{}
	backend.addMessage(2, "ping", "")
	controller, _, _ := newTestController(t, backend)

	if err := controller.Open(context.Background(), 30); err != nil {
		t.Fatalf("open: %v", err)
	}

	waitFor(t, time.Second, func() bool {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		return backend.markReads >= 1
	})
}

func TestOpenZeroesUnreadWithoutServerConfirmation(t *testing.T) {
	backend := &chatBackend{threadUnread: 3}
	backend.addMessage(2, "unread ping", "")
	gate := make(chan struct{})
	backend.readGate = gate
	defer close(gate)
	controller, _, _ := newTestController(t, backend)

	list, err := controller.Conversations(context.Background())
	if err != nil {
		t.Fatalf("conversations: %v", err)
	}
	if list[0].Unread != 3 {
		t.Fatalf("expected unread 3 before open, got %d", list[0].Unread)
	}

	if err := controller.Open(context.Background(), 30); err != nil {
		t.Fatalf("open: %v", err)
	}

	// The server has not confirmed the mark-read (the gate is still
	// closed), yet the local counter already reads zero.
	if got := controller.Snapshot().Conversations[0].Unread; got != 0 {
		t.Fatalf("unread not zeroed locally: %d", got)
	}

	// A fresh list fetch racing the mark-read must not resurrect the
	// counter for the open thread.
	list, err = controller.Conversations(context.Background())
	if err != nil {
		t.Fatalf("conversations: %v", err)
	}
	if list[0].Unread != 0 {
		t.Fatalf("server fetch resurrected unread: %d", list[0].Unread)
	}

	backend.mu.Lock()
	reads := backend.markReads
	backend.mu.Unlock()
	if reads != 0 {
		t.Fatal("mark-read confirmed before the gate opened")
	}
}

func TestSendAppearsExactlyOnce(t *testing.T) {
	backend := &chatBackend{}
	controller, messages, _ := newTestController(t, backend)

	if err := controller.Open(context.Background(), 30); err != nil {
		t.Fatalf("open: %v", err)
	}
	sent, err := controller.Send(context.Background(), "on my way")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	count := func() int {
		n := 0
		for _, m := range controller.Snapshot().Messages {
			if m.ID == sent.ID {
				n++
			}
		}
		return n
	}
	if count() != 1 {
		t.Fatalf("expected the sent message once, got %d copies", count())
	}

	// The next poll returns the same message from the server; the local
	// copy is replaced, never duplicated.
	messages.tick()
	if count() != 1 {
		t.Fatalf("expected one copy after poll, got %d", count())
	}
}

func TestSendDedupAgainstRacingPoll(t *testing.T) {
	backend := &chatBackend{}
	gate := make(chan struct{})
	backend.sendGate = gate
	controller, messages, _ := newTestController(t, backend)

	if err := controller.Open(context.Background(), 30); err != nil {
		t.Fatalf("open: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := controller.Send(context.Background(), "racy")
		done <- err
	}()

	// Wait until the server stored the message, poll it in before the
	// send response is released.
	waitFor(t, time.Second, func() bool {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		return len(backend.messages) == 1
	})
	messages.tick()
	close(gate)

	if err := <-done; err != nil {
		t.Fatalf("send: %v", err)
	}

	snap := controller.Snapshot()
	if len(snap.Messages) != 1 {
		t.Fatalf("expected 1 message after racing poll, got %d", len(snap.Messages))
	}
}

func TestSwitchingConversationDropsOldThread(t *testing.T) {
	backend := &chatBackend{}
	backend.addMessage(2, "first thread", "")
	controller, messages, _ := newTestController(t, backend)

	if err := controller.Open(context.Background(), 30); err != nil {
		t.Fatalf("open: %v", err)
	}
	// Conversation 31 does not exist on the backend; the visible load
	// fails, which is logged but must not leave thread 30 on screen.
	controller.Open(context.Background(), 31)

	snap := controller.Snapshot()
	if snap.ConversationID != 31 {
		t.Fatalf("expected conversation 31, got %d", snap.ConversationID)
	}
	if len(snap.Messages) != 0 {
		t.Fatalf("old thread messages still visible: %+v", snap.Messages)
	}

	// The first subscription was stopped, so its source is disconnected.
	before := len(controller.Snapshot().Messages)
	messages.tick()
	if got := len(controller.Snapshot().Messages); got != before {
		t.Fatalf("poll after switch changed messages: %d -> %d", before, got)
	}
}

func TestBellTracksUnreadCount(t *testing.T) {
	backend := &chatBackend{unread: 3}
	controller, _, unread := newTestController(t, backend)

	if err := controller.StartBell(context.Background()); err != nil {
		t.Fatalf("start bell: %v", err)
	}
	if got := controller.Snapshot().UnreadTotal; got != 3 {
		t.Fatalf("expected unread 3 after initial fetch, got %d", got)
	}

	backend.mu.Lock()
	backend.unread = 7
	backend.mu.Unlock()

	unread.tick()
	if got := controller.Snapshot().UnreadTotal; got != 7 {
		t.Fatalf("expected unread 7 after poll, got %d", got)
	}
}

func TestCloseStopsPolling(t *testing.T) {
	backend := &chatBackend{}
	backend.addMessage(2, "hello", "")
	controller, messages, _ := newTestController(t, backend)

	if err := controller.Open(context.Background(), 30); err != nil {
		t.Fatalf("open: %v", err)
	}
	controller.Close()
	before := len(controller.Snapshot().Messages)

	backend.mu.Lock()
	backend.addMessage(2, "after close", "")
	backend.mu.Unlock()

	messages.tick()
	if got := len(controller.Snapshot().Messages); got != before {
		t.Fatalf("poll after close updated state: %d -> %d messages", before, got)
	}
}
