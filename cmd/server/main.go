package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/adg88lu/FreeCalenderBooking/internal/api"
	"github.com/adg88lu/FreeCalenderBooking/internal/config"
	"github.com/adg88lu/FreeCalenderBooking/internal/metrics"
	"github.com/adg88lu/FreeCalenderBooking/internal/service"
)

func main() {
	godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	schedule, err := cfg.Availability.ToSchedule()
	if err != nil {
		log.Fatalf("Invalid availability config: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(registry)

	// An absent SendGrid key puts the whole service into test mode: bookings
	// are logged instead of emailed.
	var sender service.Sender
	if apiKey := os.Getenv("SENDGRID_API_KEY"); apiKey != "" {
		sender = service.NewSendGridSender(apiKey)
	} else {
		log.Println("SENDGRID_API_KEY not set, running in test mode")
	}

	sms := service.NewSMSSender(
		os.Getenv("TWILIO_ACCOUNT_SID"),
		os.Getenv("TWILIO_AUTH_TOKEN"),
		os.Getenv("TWILIO_FROM_NUMBER"),
		os.Getenv("OPERATOR_PHONE"),
	)
	if sms.Enabled() {
		log.Println("Operator SMS notifications enabled")
	}

	bookingSvc := service.NewBookingService(cfg.Notify, schedule.Timezone, sender, sms, m)

	bookingHandler := api.NewBookingHandler(bookingSvc)
	availabilityHandler := api.NewAvailabilityHandler(schedule, time.Now)

	r := mux.NewRouter()
	r.Use(m.Middleware)

	r.HandleFunc("/api/book", bookingHandler.Book).Methods(http.MethodPost)
	r.HandleFunc("/api/availability", availabilityHandler.Month).Methods(http.MethodGet)
	r.HandleFunc("/api/availability/slots", availabilityHandler.Slots).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	if cfg.Digest.Schedule != "" {
		digestSvc := service.NewDigestService(schedule, cfg.Notify, sender, time.Now)
		c := cron.New()
		if _, err := c.AddFunc(cfg.Digest.Schedule, func() {
			if err := digestSvc.SendDailyDigest(context.Background()); err != nil {
				log.Printf("Daily digest failed: %v", err)
			}
		}); err != nil {
			log.Fatalf("Invalid digest schedule %q: %v", cfg.Digest.Schedule, err)
		}
		c.Start()
		log.Printf("Daily digest scheduled (%s)", cfg.Digest.Schedule)
	}

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handlers.LoggingHandler(os.Stdout, cors(r)),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	log.Printf("Server running on port %d", cfg.Server.Port)
	log.Fatal(srv.ListenAndServe())
}
