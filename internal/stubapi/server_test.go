package stubapi

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"taskoraClient/internal/api"
	"taskoraClient/internal/listview"
	"taskoraClient/internal/models"
	"taskoraClient/internal/services"
	"taskoraClient/internal/session"
)

// userSession bundles one signed-in user's service layer, the way the
// app wires it.
type userSession struct {
	api           *api.Client
	auth          *services.AuthService
	gigs          *services.GigService
	assignments   *services.AssignmentService
	jobs          *services.JobService
	bids          *services.BidService
	orders        *services.OrderService
	chats         *services.ChatService
	notifications *services.NotificationService
	wallet        *services.WalletService
	admin         *services.AdminService
	store         *session.Store
}

func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()
	quiet := log.New(io.Discard, "", 0)
	srv := httptest.NewServer(NewServer(quiet, quiet).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func newSession(t *testing.T, srv *httptest.Server) *userSession {
	t.Helper()
	store, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open session store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	client := api.NewClient(srv.Client(), srv.URL, store)
	return &userSession{
		api:           client,
		auth:          &services.AuthService{API: client, Session: store},
		gigs:          &services.GigService{API: client},
		assignments:   &services.AssignmentService{API: client},
		jobs:          &services.JobService{API: client},
		bids:          &services.BidService{API: client},
		orders:        &services.OrderService{API: client},
		chats:         &services.ChatService{API: client},
		notifications: &services.NotificationService{API: client},
		wallet:        &services.WalletService{API: client},
		admin:         &services.AdminService{API: client},
		store:         store,
	}
}

func signIn(t *testing.T, srv *httptest.Server, email string) *userSession {
	t.Helper()
	s := newSession(t, srv)
	_, err := s.auth.SignIn(context.Background(), models.SignInRequest{
		Email: email, Password: "password123",
	})
	if err != nil {
		t.Fatalf("sign in %s: %v", email, err)
	}
	return s
}

func TestSignInPersistsSession(t *testing.T) {
	srv := newStubServer(t)
	s := newSession(t, srv)
	ctx := context.Background()

	user, err := s.auth.SignIn(ctx, models.SignInRequest{
		Email: "client@taskora.dev", Password: "password123",
	})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if user.Name != "Aigerim" || user.Role != models.RoleClient {
		t.Fatalf("unexpected user: %+v", user)
	}

	token, err := s.store.Token()
	if err != nil || token == "" {
		t.Fatalf("token not persisted: %q %v", token, err)
	}

	// The persisted token authenticates later requests.
	if _, err := s.wallet.Get(ctx); err != nil {
		t.Fatalf("authed call after sign in: %v", err)
	}

	if err := s.auth.SignOut(ctx); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if _, err := s.wallet.Get(ctx); !api.IsUnauthorized(err) {
		t.Fatalf("expected 401 after sign out, got %v", err)
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	srv := newStubServer(t)
	s := newSession(t, srv)

	_, err := s.auth.SignIn(context.Background(), models.SignInRequest{
		Email: "client@taskora.dev", Password: "wrong",
	})
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestGigSearch(t *testing.T) {
	srv := newStubServer(t)
	s := signIn(t, srv, "client@taskora.dev")
	ctx := context.Background()

	cases := []struct {
		name   string
		filter listview.Filter
		want   []string
	}{
		{"search matches title", listview.Filter{Search: "logo"},
			[]string{"Logo design", "Logo animation"}},
		{"category", listview.Filter{Category: "web"},
			[]string{"Landing page"}},
		{"price band sorted", listview.Filter{PriceFrom: 20000, Sort: "price_asc"},
			[]string{"Logo animation", "Landing page"}},
		{"no matches", listview.Filter{Search: "blockchain"}, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := s.gigs.Search(ctx, tc.filter)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if page.Total != len(tc.want) {
				t.Fatalf("expected total %d, got %d", len(tc.want), page.Total)
			}
			for i, title := range tc.want {
				if page.Results[i].Title != title {
					t.Fatalf("result %d: expected %q, got %q", i, title, page.Results[i].Title)
				}
			}
		})
	}
}

func TestOrderLifecycle(t *testing.T) {
	srv := newStubServer(t)
	buyer := signIn(t, srv, "client@taskora.dev")
	seller := signIn(t, srv, "freelancer@taskora.dev")
	ctx := context.Background()

	order, err := buyer.orders.Purchase(ctx, 10)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if order.Status != models.OrderStatusActive || order.SellerID != 2 {
		t.Fatalf("unexpected order: %+v", order)
	}

	// The gig price moved from balance to escrow.
	wallet, err := buyer.wallet.Get(ctx)
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}
	if wallet.Balance != 105000 || wallet.EscrowBalance != 30000 {
		t.Fatalf("escrow hold not applied: %+v", wallet)
	}

	// Only the seller may deliver.
	_, err = buyer.orders.Deliver(ctx, order.ID, "done", "", nil)
	if !api.IsStatus(err, 403) {
		t.Fatalf("expected 403 for buyer delivering, got %v", err)
	}

	delivery, err := seller.orders.Deliver(ctx, order.ID, "All done, see attached",
		"logo.zip", strings.NewReader("zipbytes"))
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if delivery.AttachmentURL == "" {
		t.Fatalf("attachment not recorded: %+v", delivery)
	}

	got, err := buyer.orders.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.Status != models.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", got.Status)
	}

	completed, err := buyer.orders.Complete(ctx, order.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != models.OrderStatusCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}

	// Escrow released to the seller.
	sellerWallet, err := seller.wallet.Get(ctx)
	if err != nil {
		t.Fatalf("seller wallet: %v", err)
	}
	if sellerWallet.Balance != 98000 {
		t.Fatalf("release not credited: %+v", sellerWallet)
	}
	buyerWallet, _ := buyer.wallet.Get(ctx)
	if buyerWallet.EscrowBalance != 15000 {
		t.Fatalf("escrow not drained: %+v", buyerWallet)
	}

	page, err := seller.wallet.Transactions(ctx, listview.Filter{})
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	foundRelease := false
	for _, tx := range page.Results {
		if tx.Type == models.TransactionRelease && tx.OrderID == order.ID {
			foundRelease = true
		}
	}
	if !foundRelease {
		t.Fatal("release transaction missing")
	}
}

func TestInsufficientBalance(t *testing.T) {
	srv := newStubServer(t)
	seller := signIn(t, srv, "freelancer@taskora.dev")

	// User 2's seeded balance does not cover their own landing page gig
	// twice; two purchases trip the check.
	ctx := context.Background()
	if _, err := seller.orders.Purchase(ctx, 11); err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	_, err := seller.orders.Purchase(ctx, 11)
	if !api.IsStatus(err, 402) {
		t.Fatalf("expected 402, got %v", err)
	}
}

func TestBidToOrderFlow(t *testing.T) {
	srv := newStubServer(t)
	client := signIn(t, srv, "client@taskora.dev")
	freelancer := signIn(t, srv, "freelancer@taskora.dev")
	ctx := context.Background()

	bid, err := freelancer.bids.Place(ctx, models.BidInput{
		AssignmentID: 20, Amount: 50000, DurationDays: 10,
		CoverMessage: "I have built three of these",
	})
	if err != nil {
		t.Fatalf("place bid: %v", err)
	}
	if bid.Status != models.BidStatusPending {
		t.Fatalf("unexpected bid: %+v", bid)
	}

	bids, err := client.bids.ListForAssignment(ctx, 20)
	if err != nil {
		t.Fatalf("list bids: %v", err)
	}
	if len(bids) != 1 || bids[0].ID != bid.ID {
		t.Fatalf("unexpected bids: %+v", bids)
	}

	order, err := client.bids.Accept(ctx, bid.ID)
	if err != nil {
		t.Fatalf("accept bid: %v", err)
	}
	if order.Status != models.OrderStatusActive || order.Price != 50000 {
		t.Fatalf("unexpected order: %+v", order)
	}
	if order.AssignmentID != 20 || order.SellerID != 2 {
		t.Fatalf("order not linked to assignment: %+v", order)
	}

	assignment, err := client.assignments.GetByID(ctx, 20)
	if err != nil {
		t.Fatalf("get assignment: %v", err)
	}
	if assignment.Status != models.AssignmentStatusInProgress {
		t.Fatalf("assignment not moved to in_progress: %s", assignment.Status)
	}

	// Accepting held the bid amount in escrow.
	wallet, _ := client.wallet.Get(ctx)
	if wallet.Balance != 70000 {
		t.Fatalf("bid amount not held: %+v", wallet)
	}

	// The winner hears about it.
	count, err := freelancer.notifications.UnreadCount(ctx)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if count < 1 {
		t.Fatal("expected a notification for the accepted bid")
	}
}

func TestJobApplicationFlow(t *testing.T) {
	srv := newStubServer(t)
	client := signIn(t, srv, "client@taskora.dev")
	freelancer := signIn(t, srv, "freelancer@taskora.dev")
	ctx := context.Background()

	page, err := freelancer.jobs.Search(ctx, listview.Filter{Search: "backend"})
	if err != nil {
		t.Fatalf("search jobs: %v", err)
	}
	if page.Total != 1 || page.Results[0].ID != 25 {
		t.Fatalf("seeded job not found: %+v", page)
	}

	job, err := freelancer.jobs.GetByID(ctx, 25)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if !job.Remote || job.Status != models.JobStatusOpen {
		t.Fatalf("unexpected job: %+v", job)
	}

	before, _ := client.notifications.UnreadCount(ctx)

	application, err := freelancer.jobs.Apply(ctx, 25, "Five years of Go",
		"daniyar_cv.pdf", strings.NewReader("pdfbytes"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if application.JobID != 25 || application.UserID != 2 {
		t.Fatalf("unexpected application: %+v", application)
	}
	if application.ResumeURL == "" || !strings.HasSuffix(application.ResumeURL, "daniyar_cv.pdf") {
		t.Fatalf("resume not recorded: %+v", application)
	}

	// The poster hears about the application.
	after, err := client.notifications.UnreadCount(ctx)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if after != before+1 {
		t.Fatalf("expected poster unread to grow by one: %d -> %d", before, after)
	}
}

func TestJobCreateAndList(t *testing.T) {
	srv := newStubServer(t)
	client := signIn(t, srv, "client@taskora.dev")
	ctx := context.Background()

	created, err := client.jobs.Create(ctx, models.JobInput{
		Title: "React developer", Category: "web",
		SalaryFrom: 400000, SalaryTo: 600000, Remote: true,
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if created.Status != models.JobStatusOpen || created.UserID != 1 {
		t.Fatalf("unexpected job: %+v", created)
	}

	page, err := client.jobs.Search(ctx, listview.Filter{Category: "web"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.Total != 1 || page.Results[0].ID != created.ID {
		t.Fatalf("created job not listed: %+v", page)
	}
}

func TestPurchaseIdempotency(t *testing.T) {
	srv := newStubServer(t)
	buyer := signIn(t, srv, "client@taskora.dev")
	ctx := context.Background()

	body := map[string]interface{}{"gig_id": 10, "idempotency_key": "retry-key-1"}

	var first, second models.Order
	if err := buyer.api.Post(ctx, "/orders", body, &first); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := buyer.api.Post(ctx, "/orders", body, &second); err != nil {
		t.Fatalf("retried submit: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("retry created a new order: %d vs %d", first.ID, second.ID)
	}

	// One order, one escrow hold.
	page, err := buyer.orders.List(ctx, listview.Filter{})
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected 1 order, got %d", page.Total)
	}
	wallet, err := buyer.wallet.Get(ctx)
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}
	if wallet.Balance != 105000 || wallet.EscrowBalance != 30000 {
		t.Fatalf("retry charged twice: %+v", wallet)
	}
}

func TestWSRequiresAuth(t *testing.T) {
	srv := newStubServer(t)
	user := signIn(t, srv, "client@taskora.dev")

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("expected unauthenticated dial to fail")
	}
	if resp == nil || resp.StatusCode != 401 {
		t.Fatalf("expected 401 handshake response, got %+v", resp)
	}

	token, err := user.store.Token()
	if err != nil || token == "" {
		t.Fatalf("token: %q %v", token, err)
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("authenticated dial: %v", err)
	}
	conn.Close()
}

func TestChatNotifiesPeer(t *testing.T) {
	srv := newStubServer(t)
	client := signIn(t, srv, "client@taskora.dev")
	freelancer := signIn(t, srv, "freelancer@taskora.dev")
	ctx := context.Background()

	before, err := freelancer.notifications.UnreadCount(ctx)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}

	message, err := client.chats.Send(ctx, models.SendMessageRequest{
		ConversationID: 30, Text: "Can you start tomorrow?", ClientID: "c-1",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if message.ClientID != "c-1" {
		t.Fatalf("client id not echoed: %+v", message)
	}

	messages, err := freelancer.chats.Messages(ctx, 30, 1, 50)
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if messages[len(messages)-1].Text != "Can you start tomorrow?" {
		t.Fatalf("message not visible to peer: %+v", messages)
	}

	after, err := freelancer.notifications.UnreadCount(ctx)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if after != before+1 {
		t.Fatalf("expected unread to grow by one: %d -> %d", before, after)
	}

	if err := freelancer.notifications.MarkAllRead(ctx); err != nil {
		t.Fatalf("mark all read: %v", err)
	}
	cleared, _ := freelancer.notifications.UnreadCount(ctx)
	if cleared != 0 {
		t.Fatalf("expected zero unread, got %d", cleared)
	}
}

func TestAdminGuard(t *testing.T) {
	srv := newStubServer(t)
	client := signIn(t, srv, "client@taskora.dev")
	admin := signIn(t, srv, "admin@taskora.dev")
	ctx := context.Background()

	if _, err := client.admin.ListUsers(ctx, listview.Filter{}); !api.IsStatus(err, 403) {
		t.Fatalf("expected 403 for non-admin, got %v", err)
	}

	page, err := admin.admin.ListUsers(ctx, listview.Filter{})
	if err != nil {
		t.Fatalf("admin list users: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("expected 3 seeded users, got %d", page.Total)
	}

	// A ban blocks the next sign-in, existing tokens keep working until
	// they expire.
	if err := admin.admin.BanUser(ctx, 1); err != nil {
		t.Fatalf("ban: %v", err)
	}
	fresh := newSession(t, srv)
	_, err = fresh.auth.SignIn(ctx, models.SignInRequest{
		Email: "client@taskora.dev", Password: "password123",
	})
	if !api.IsStatus(err, 403) {
		t.Fatalf("expected 403 for banned sign in, got %v", err)
	}

	if err := admin.admin.UnbanUser(ctx, 1); err != nil {
		t.Fatalf("unban: %v", err)
	}
	if _, err := fresh.auth.SignIn(ctx, models.SignInRequest{
		Email: "client@taskora.dev", Password: "password123",
	}); err != nil {
		t.Fatalf("sign in after unban: %v", err)
	}
}
