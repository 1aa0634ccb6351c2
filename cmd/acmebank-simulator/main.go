package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// declineThreshold simulates an account balance: anything above it is
// declined for insufficient funds.
var declineThreshold = decimal.NewFromInt(100)

type processPaymentRequest struct {
	CreditCardNumber string          `json:"creditCardNumber"`
	ExpiryMonth      int             `json:"expiryMonth"`
	ExpiryYear       int             `json:"expiryYear"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	CVV              string          `json:"cvv"`
}

type processPaymentResponse struct {
	ID            string  `json:"id"`
	WasSuccessful bool    `json:"wasSuccessful"`
	Error         *string `json:"error,omitempty"`
}

func processPayment(w http.ResponseWriter, r *http.Request) {
	var request processPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response := processPaymentResponse{
		ID:            uuid.New().String(),
		WasSuccessful: true,
	}

	if request.Amount.GreaterThan(declineThreshold) {
		reason := "Insufficient Funds"
		response.WasSuccessful = false
		response.Error = &reason
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8090"
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Post("/payments/process", processPayment)

	server := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	fmt.Printf("Starting acmebank-simulator on port %s\n", port)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down acmebank-simulator...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
}
