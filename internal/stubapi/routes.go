package stubapi

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (s *Server) Routes() http.Handler {
	standard := alice.New(s.recoverPanic, s.logRequest, secureHeaders, makeResponseJSON)
	authed := standard.Append(s.requireAuth)
	admin := authed.Append(s.requireAdmin)

	mux := pat.New()

	// Users
	mux.Post("/user/sign_up", standard.ThenFunc(s.handleSignUp))
	mux.Post("/user/sign_in", standard.ThenFunc(s.handleSignIn))
	mux.Get("/user/me", authed.ThenFunc(s.handleMe))
	mux.Put("/user/:id", authed.ThenFunc(s.handleUpdateUser))
	mux.Post("/user/:id/avatar", authed.ThenFunc(s.handleUploadAvatar))

	// Gigs
	mux.Post("/gigs", authed.ThenFunc(s.handleCreateGig))
	mux.Get("/gigs/:id", authed.ThenFunc(s.handleGetGig))
	mux.Get("/gigs", authed.ThenFunc(s.handleListGigs))
	mux.Put("/gigs/:id/status", authed.ThenFunc(s.handleGigStatus))
	mux.Put("/gigs/:id", authed.ThenFunc(s.handleUpdateGig))
	mux.Del("/gigs/:id", authed.ThenFunc(s.handleDeleteGig))

	// Assignments and bids
	mux.Post("/assignments", authed.ThenFunc(s.handleCreateAssignment))
	mux.Get("/assignments/:id/bids", authed.ThenFunc(s.handleAssignmentBids))
	mux.Put("/assignments/:id/status", authed.ThenFunc(s.handleAssignmentStatus))
	mux.Get("/assignments/:id", authed.ThenFunc(s.handleGetAssignment))
	mux.Get("/assignments", authed.ThenFunc(s.handleListAssignments))
	mux.Post("/bids", authed.ThenFunc(s.handlePlaceBid))
	mux.Get("/bids/my", authed.ThenFunc(s.handleMyBids))
	mux.Post("/bids/:id/accept", authed.ThenFunc(s.handleAcceptBid))
	mux.Post("/bids/:id/reject", authed.ThenFunc(s.handleRejectBid))
	mux.Del("/bids/:id", authed.ThenFunc(s.handleWithdrawBid))

	// Jobs
	mux.Post("/jobs", authed.ThenFunc(s.handleCreateJob))
	mux.Post("/jobs/:id/apply", authed.ThenFunc(s.handleApplyJob))
	mux.Get("/jobs/:id", authed.ThenFunc(s.handleGetJob))
	mux.Get("/jobs", authed.ThenFunc(s.handleListJobs))

	// Orders
	mux.Post("/orders", authed.ThenFunc(s.handleCreateOrder))
	mux.Get("/orders", authed.ThenFunc(s.handleListOrders))
	mux.Post("/orders/:id/deliver", authed.ThenFunc(s.handleDeliver))
	mux.Post("/orders/:id/revision", authed.ThenFunc(s.handleRevision))
	mux.Post("/orders/:id/complete", authed.ThenFunc(s.handleComplete))
	mux.Post("/orders/:id/cancel", authed.ThenFunc(s.handleCancel))
	mux.Post("/orders/:id/review", authed.ThenFunc(s.handleReview))
	mux.Get("/orders/:id", authed.ThenFunc(s.handleGetOrder))

	// Chat
	mux.Get("/chats", authed.ThenFunc(s.handleConversations))
	mux.Get("/chats/:id/messages", authed.ThenFunc(s.handleMessages))
	mux.Post("/chats/:id/messages", authed.ThenFunc(s.handleSendMessage))
	mux.Post("/chats/:id/read", authed.ThenFunc(s.handleMarkRead))

	// Notifications
	mux.Get("/notifications/unread_count", authed.ThenFunc(s.handleUnreadCount))
	mux.Post("/notifications/read_all", authed.ThenFunc(s.handleReadAll))
	mux.Post("/notifications/:id/read", authed.ThenFunc(s.handleReadNotification))
	mux.Get("/notifications", authed.ThenFunc(s.handleListNotifications))

	// Wallet
	mux.Get("/wallet/transactions", authed.ThenFunc(s.handleTransactions))
	mux.Post("/wallet/withdraw", authed.ThenFunc(s.handleWithdraw))
	mux.Post("/wallet/top_up", authed.ThenFunc(s.handleTopUp))
	mux.Get("/wallet", authed.ThenFunc(s.handleWallet))

	// Verification
	mux.Post("/verification/documents", authed.ThenFunc(s.handleVerificationDocuments))
	mux.Post("/verification/skill_test", authed.ThenFunc(s.handleSkillTest))
	mux.Post("/verification/interview", authed.ThenFunc(s.handleInterview))
	mux.Get("/verification", authed.ThenFunc(s.handleVerification))

	// Admin
	mux.Get("/admin/users", admin.ThenFunc(s.handleAdminUsers))
	mux.Post("/admin/users/:id/ban", admin.ThenFunc(s.handleBan))
	mux.Post("/admin/users/:id/unban", admin.ThenFunc(s.handleUnban))
	mux.Get("/admin/verifications", admin.ThenFunc(s.handleAdminVerifications))
	mux.Put("/admin/verifications/:id", admin.ThenFunc(s.handleReviewVerification))

	// Push channel; auth via bearer header like everything else.
	mux.Get("/ws", alice.New(s.recoverPanic, s.logRequest, s.requireAuth).ThenFunc(s.handleWS))

	return mux
}
