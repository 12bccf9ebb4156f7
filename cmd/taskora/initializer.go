package main

import (
	"log"
	"net/http"

	"taskoraClient/internal/api"
	"taskoraClient/internal/chat"
	"taskoraClient/internal/config"
	"taskoraClient/internal/poll"
	"taskoraClient/internal/services"
	"taskoraClient/internal/session"
)

type application struct {
	cfg      config.Config
	errorLog *log.Logger
	infoLog  *log.Logger

	session *session.Store
	client  *api.Client

	authService         *services.AuthService
	gigService          *services.GigService
	assignmentService   *services.AssignmentService
	jobService          *services.JobService
	bidService          *services.BidService
	orderService        *services.OrderService
	chatService         *services.ChatService
	notificationService *services.NotificationService
	walletService       *services.WalletService
	verificationService *services.VerificationService
	adminService        *services.AdminService

	chatController *chat.Controller
}

func initializeApp(cfg config.Config, infoLog, errorLog *log.Logger) (*application, error) {
	store, err := session.Open(cfg.Session.Path)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(&http.Client{Timeout: cfg.API.Timeout}, cfg.API.BaseURL, store)

	app := &application{
		cfg:      cfg,
		errorLog: errorLog,
		infoLog:  infoLog,
		session:  store,
		client:   client,

		authService:         &services.AuthService{API: client, Session: store},
		gigService:          &services.GigService{API: client},
		assignmentService:   &services.AssignmentService{API: client},
		jobService:          &services.JobService{API: client},
		bidService:          &services.BidService{API: client},
		orderService:        &services.OrderService{API: client},
		chatService:         &services.ChatService{API: client},
		notificationService: &services.NotificationService{API: client},
		walletService:       &services.WalletService{API: client},
		verificationService: &services.VerificationService{API: client},
		adminService:        &services.AdminService{API: client},
	}

	app.chatController = chat.NewController(
		app.chatService,
		app.notificationService,
		appLogger{infoLog: infoLog, errorLog: errorLog},
		chat.WithSources(
			poll.IntervalSource{Interval: cfg.Sync.MessageInterval},
			poll.IntervalSource{Interval: cfg.Sync.UnreadInterval},
		),
	)
	return app, nil
}

func (app *application) Close() {
	if app.chatController != nil {
		app.chatController.Close()
	}
	if app.session != nil {
		app.session.Close()
	}
}

type appLogger struct {
	infoLog  *log.Logger
	errorLog *log.Logger
}

func (l appLogger) Infof(format string, args ...interface{}) {
	l.infoLog.Printf(format, args...)
}

func (l appLogger) Errorf(format string, args ...interface{}) {
	l.errorLog.Printf(format, args...)
}
