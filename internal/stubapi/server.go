package stubapi

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"

	"taskoraClient/internal/models"
	"taskoraClient/utils"
)

const signingKey = "taskora-stub-signing-key"

// Server is an in-memory marketplace backend. It exists to run the
// client against: `taskora` in dev mode and the test suite both point
// at it. State lives behind one mutex; every response is a snapshot.
type Server struct {
	tokens   *utils.Manager
	infoLog  *log.Logger
	errorLog *log.Logger

	mu            sync.Mutex
	nextID        int
	users         []models.User
	passwords     map[string]string // email -> bcrypt hash
	gigs          []models.Gig
	assignments   []models.Assignment
	jobs          []models.Job
	applications  []models.JobApplication
	bids          []models.Bid
	orders        []models.Order
	orderKeys     map[string]int // idempotency key -> order ID
	conversations map[int][]models.Conversation // userID -> conversations
	messages      map[int][]models.Message      // conversationID -> messages
	notifications []models.Notification
	wallets       map[int]models.Wallet
	transactions  []models.Transaction
	verifications map[int]models.VerificationRequest

	wsMu      sync.Mutex
	wsClients map[*websocket.Conn]struct{}
}

func NewServer(infoLog, errorLog *log.Logger) *Server {
	tokens, err := utils.NewManager(signingKey)
	if err != nil {
		panic(err)
	}
	s := &Server{
		tokens:        tokens,
		infoLog:       infoLog,
		errorLog:      errorLog,
		nextID:        1000,
		passwords:     make(map[string]string),
		orderKeys:     make(map[string]int),
		conversations: make(map[int][]models.Conversation),
		messages:      make(map[int][]models.Message),
		wallets:       make(map[int]models.Wallet),
		verifications: make(map[int]models.VerificationRequest),
		wsClients:     make(map[*websocket.Conn]struct{}),
	}
	s.seed()
	return s
}

func (s *Server) id() int {
	s.nextID++
	return s.nextID
}

func (s *Server) seed() {
	now := time.Now().UTC()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	s.users = []models.User{
		{ID: 1, Name: "Aigerim", Email: "client@taskora.dev", Role: models.RoleClient, CreatedAt: now},
		{ID: 2, Name: "Daniyar", Email: "freelancer@taskora.dev", Role: models.RoleFreelancer,
			ReviewRating: 4.8, ReviewsCount: 37, Verified: true, Skills: []string{"Go", "React"}, CreatedAt: now},
		{ID: 3, Name: "Admin", Email: "admin@taskora.dev", Role: models.RoleAdmin, CreatedAt: now},
	}
	for _, u := range s.users {
		s.passwords[u.Email] = string(hash)
	}

	s.gigs = []models.Gig{
		{ID: 10, UserID: 2, UserName: "Daniyar", Title: "Logo design", Category: "design",
			Description: "Minimal logo in 3 days", Price: 15000, DeliveryDays: 3,
			Status: models.GigStatusActive, OrdersDone: 12, CreatedAt: now},
		{ID: 11, UserID: 2, UserName: "Daniyar", Title: "Landing page", Category: "web",
			Description: "Responsive landing", Price: 60000, DeliveryDays: 7,
			Status: models.GigStatusActive, OrdersDone: 5, CreatedAt: now},
		{ID: 12, UserID: 2, UserName: "Daniyar", Title: "Logo animation", Category: "design",
			Description: "Animated logo intro", Price: 25000, DeliveryDays: 4,
			Status: models.GigStatusActive, CreatedAt: now},
	}

	s.assignments = []models.Assignment{
		{ID: 20, UserID: 1, UserName: "Aigerim", Title: "Telegram bot", Category: "dev",
			Description: "Order tracking bot", Skills: []string{"Go"},
			BudgetFrom: 40000, BudgetTo: 90000, Status: models.AssignmentStatusOpen, CreatedAt: now},
	}

	s.jobs = []models.Job{
		{ID: 25, UserID: 1, CompanyName: "Taskora Studio", Title: "Go backend engineer",
			Category: "dev", Description: "Marketplace backend, escrow and chat",
			Skills: []string{"Go", "SQL"}, SalaryFrom: 500000, SalaryTo: 800000,
			Location: "Almaty", Remote: true, Status: models.JobStatusOpen, CreatedAt: now},
	}

	s.conversations[1] = []models.Conversation{
		{ID: 30, PeerID: 2, PeerName: "Daniyar", LastMessage: "Hi!", LastMessageAt: now, Unread: 1},
	}
	s.conversations[2] = []models.Conversation{
		{ID: 30, PeerID: 1, PeerName: "Aigerim", LastMessage: "Hi!", LastMessageAt: now},
	}
	s.messages[30] = []models.Message{
		{ID: 40, ConversationID: 30, SenderID: 2, Text: "Hi!", CreatedAt: now},
	}

	s.notifications = []models.Notification{
		{ID: 50, UserID: 1, Type: models.NotificationNewMessage, Title: "New message from Daniyar", CreatedAt: now},
	}

	s.wallets[1] = models.Wallet{UserID: 1, Balance: 120000, EscrowBalance: 15000, Currency: "KZT"}
	s.wallets[2] = models.Wallet{UserID: 2, Balance: 83000, Currency: "KZT"}
}

// broadcast pokes every websocket subscriber; the payload only says
// something changed, clients re-fetch through the regular endpoints.
func (s *Server) broadcast(event string) {
	s.wsMu.Lock()
	defer s.wsMu.Unlock()
	for conn := range s.wsClients {
		if err := conn.WriteJSON(map[string]string{"event": event}); err != nil {
			conn.Close()
			delete(s.wsClients, conn)
		}
	}
}
