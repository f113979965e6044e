package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/restaurant-table-booking/internal/booking"
	"github.com/iliyamo/restaurant-table-booking/internal/config"
	"github.com/iliyamo/restaurant-table-booking/internal/database"
	"github.com/iliyamo/restaurant-table-booking/internal/handler"
	appmw "github.com/iliyamo/restaurant-table-booking/internal/middleware"
	"github.com/iliyamo/restaurant-table-booking/internal/notify"
	"github.com/iliyamo/restaurant-table-booking/internal/repository"
	"github.com/iliyamo/restaurant-table-booking/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories.
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	tableRepo := repository.NewTableRepo(db)
	bookingRepo := repository.NewBookingRepo(db, tableRepo)
	contactRepo := repository.NewContactRepo(db)

	// Booking engine with its fire-and-forget notifier.
	dispatcher := notify.NewDispatcher()
	svc := booking.NewService(tableRepo, bookingRepo, dispatcher, cfg.BookingDuration)

	// Notification consumer: drains the queue and sends mail.  Runs for
	// the lifetime of the process; broker outages are retried inside.
	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	go notify.RunConsumer(mailer)

	// Redis-backed middleware.  A nil client disables both features.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: response cache and rate limiting disabled")
	}
	cacheMW := appmw.NewRedisCache(config.LoadCacheConfig(), rdb)
	rateMW := appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	tableHandler := handler.NewTableHandler(tableRepo, svc)
	bookingHandler := handler.NewBookingHandler(svc)
	contactHandler := handler.NewContactHandler(contactRepo, userRepo, dispatcher)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterTables(e, tableHandler, cfg.JWTSecret, cacheMW)
	router.RegisterBookings(e, bookingHandler, cfg.JWTSecret, rateMW)
	router.RegisterContact(e, contactHandler)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
