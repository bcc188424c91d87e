package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/dkaverin/hotel-booking/internal/config"
	"github.com/dkaverin/hotel-booking/internal/database"
	"github.com/dkaverin/hotel-booking/internal/handler"
	"github.com/dkaverin/hotel-booking/internal/middleware"
	"github.com/dkaverin/hotel-booking/internal/queue"
	"github.com/dkaverin/hotel-booking/internal/repository"
	"github.com/dkaverin/hotel-booking/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	hotels := repository.NewHotelRepo(db)
	reviews := repository.NewReviewRepo(db)
	reservations := repository.NewReservationRepo(db)

	// Redis backs the hotel browse cache; nil disables it.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable, response cache disabled")
	}
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.Use(middleware.Authenticate(cfg.JWTSecret, users))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users))
	router.RegisterHotels(e, handler.NewHotelHandler(hotels, reviews), cache)
	router.RegisterUsers(e,
		handler.NewUserHandler(users),
		handler.NewReservationHandler(users, reservations))

	// Reservation events are consumed in the background; the consumer
	// reconnects on its own and never takes the server down.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
