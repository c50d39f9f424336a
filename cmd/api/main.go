package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	httpadp "buscocredito-backend/internal/adapter/http"
	appmw "buscocredito-backend/internal/adapter/middleware"
	"buscocredito-backend/internal/adapter/repository/mysql"
	"buscocredito-backend/internal/config"
	lrDomain "buscocredito-backend/internal/domain/loanrequest"
	notifDomain "buscocredito-backend/internal/domain/notification"
	propDomain "buscocredito-backend/internal/domain/proposal"
	"buscocredito-backend/internal/infrastructure/cache"
	"buscocredito-backend/internal/infrastructure/db"
	"buscocredito-backend/internal/notifier"
	ucAcceptance "buscocredito-backend/internal/usecase/acceptance"
	ucLoanRequest "buscocredito-backend/internal/usecase/loanrequest"
	ucNotification "buscocredito-backend/internal/usecase/notification"
	ucOfferStatus "buscocredito-backend/internal/usecase/offerstatus"
	ucProposal "buscocredito-backend/internal/usecase/proposal"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(&lrDomain.LoanRequest{}, &propDomain.Proposal{}, &notifDomain.Notification{}); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	loanRepo := mysql.NewLoanRequestRepository(gdb)
	propRepo := mysql.NewProposalRepository(gdb)
	notifRepo := mysql.NewNotificationRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	var mailer notifier.Mailer
	if cfg.EmailEnabled() {
		mailer = notifier.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SenderEmail, logger)
	}
	dispatcher := notifier.NewDispatcher(notifRepo, mailer, logger)

	loanUC := ucLoanRequest.NewUsecase(loanRepo)
	propUC := ucProposal.NewUsecase(loanRepo, propRepo)
	acceptUC := ucAcceptance.NewUsecase(uow, propRepo, dispatcher, logger)
	statusUC := ucOfferStatus.NewUsecase(loanRepo, propRepo, logger)
	notifUC := ucNotification.NewUsecase(notifRepo)

	h := httpadp.NewHandler()
	loanH := httpadp.NewLoanRequestHandler(loanUC)
	propH := httpadp.NewProposalHandler(propUC)
	offerH := httpadp.NewOfferHandler(acceptUC, statusUC)
	notifH := httpadp.NewNotificationHandler(notifUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	// idempotency only on state-changing routes; /offers/status is a
	// read behind POST and stays replayable without headers
	idemp := appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// routes
	e.GET("/health", h.Health)
	e.POST("/loan-requests", loanH.CreateLoanRequest, idemp)
	e.GET("/loan-requests/:loan_id", loanH.GetLoanRequest)
	e.GET("/borrowers/:borrower_id/loan-requests", loanH.ListBorrowerLoanRequests)
	e.POST("/loan-requests/:loan_id/proposals", propH.CreateProposal, idemp)
	e.GET("/loan-requests/:loan_id/proposals", propH.ListProposals)
	e.POST("/proposals/status", offerH.UpdateProposalStatus, idemp)
	e.POST("/offers/status", offerH.CheckOfferStatus)
	e.GET("/notifications/:recipient_id", notifH.ListNotifications)
	e.POST("/notifications/:notification_id/read", notifH.MarkNotificationRead)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
