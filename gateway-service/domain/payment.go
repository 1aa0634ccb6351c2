package domain

import (
	"context"

	"github.com/acmepay/payment-gateway/shared/events"
	"github.com/acmepay/payment-gateway/shared/models"
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts serialize as JSON numbers, matching the bank's wire format
	decimal.MarshalJSONWithoutQuotes = true
}

// PaymentStatus represents the terminal outcome of a payment request
type PaymentStatus string

const (
	PaymentStatusSuccessful      PaymentStatus = "successful"
	PaymentStatusUnsuccessful    PaymentStatus = "unsuccessful"
	PaymentStatusUnableToProcess PaymentStatus = "unable_to_process"
)

// UnableToProcessDescription is recorded when the bank call itself fails
const UnableToProcessDescription = "Unable to process with bank"

// PaymentRequest is the transient input to the processing pipeline.
// No invariants are enforced at construction; the RequestValidator owns them all.
type PaymentRequest struct {
	CreditCardNumber string
	CVV              string
	ExpiryMonth      int
	ExpiryYear       int
	Amount           decimal.Decimal
	Currency         string
	CustomerName     string
	Reference        string
}

// BankOutcome is the mapped result of a single bank call
type BankOutcome struct {
	Status               PaymentStatus
	BankTransactionID    *models.ID
	BankErrorDescription *string
}

// Payment is the persisted record of a processed payment request.
// It is created exactly once, after the bank call, and never mutated.
type Payment struct {
	ID                   models.ID
	Status               PaymentStatus
	BankTransactionID    *models.ID
	BankErrorDescription *string

	CreditCardNumber string
	CVV              string
	ExpiryMonth      int
	ExpiryYear       int
	Amount           decimal.Decimal
	Currency         string
	CustomerName     string
	Reference        string

	Timestamps models.Timestamps

	events []*events.Event
}

// NewPayment creates the write-once payment record for a validated request
// and records the matching domain event.
func NewPayment(request *PaymentRequest, outcome BankOutcome) *Payment {
	payment := &Payment{
		ID:                   models.GenerateUUID(),
		Status:               outcome.Status,
		BankTransactionID:    outcome.BankTransactionID,
		BankErrorDescription: outcome.BankErrorDescription,
		CreditCardNumber:     request.CreditCardNumber,
		CVV:                  request.CVV,
		ExpiryMonth:          request.ExpiryMonth,
		ExpiryYear:           request.ExpiryYear,
		Amount:               request.Amount,
		Currency:             request.Currency,
		CustomerName:         request.CustomerName,
		Reference:            request.Reference,
		Timestamps:           models.NewTimestamps(),
	}

	event := events.NewEvent(payment.ID, topicForStatus(payment.Status), PaymentProcessedData{
		PaymentID:            payment.ID,
		Status:               payment.Status,
		Amount:               payment.Amount,
		Currency:             payment.Currency,
		BankTransactionID:    payment.BankTransactionID,
		BankErrorDescription: payment.BankErrorDescription,
	})

	payment.events = append(payment.events, event)
	return payment
}

// Events returns domain events
func (p *Payment) Events() []*events.Event {
	return p.events
}

func topicForStatus(status PaymentStatus) events.Topic {
	switch status {
	case PaymentStatusSuccessful:
		return events.PaymentSuccessfulEvent
	case PaymentStatusUnsuccessful:
		return events.PaymentUnsuccessfulEvent
	default:
		return events.PaymentUnableToProcessEvent
	}
}

// PaymentProcessedData is the payload of payment outcome events
type PaymentProcessedData struct {
	PaymentID            models.ID       `json:"payment_id"`
	Status               PaymentStatus   `json:"status"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	BankTransactionID    *models.ID      `json:"bank_transaction_id,omitempty"`
	BankErrorDescription *string         `json:"bank_error_description,omitempty"`
}

// PaymentRepository persists payment records
type PaymentRepository interface {
	Insert(ctx context.Context, payment *Payment) error
	// FindByID returns (nil, nil) when no record exists for id
	FindByID(ctx context.Context, id models.ID) (*Payment, error)
}

// BankPaymentOrder carries the fields forwarded to the acquiring bank
type BankPaymentOrder struct {
	CreditCardNumber string
	CVV              string
	ExpiryMonth      int
	ExpiryYear       int
	Amount           decimal.Decimal
	Currency         string
	CustomerName     string
}

// BankPaymentResult is a business-level response from the bank. WasSuccessful
// false means the bank declined the payment; transaction id and error are
// carried verbatim either way.
type BankPaymentResult struct {
	TransactionID models.ID
	WasSuccessful bool
	Error         string
}

// BankGateway performs the external payment call. A non-nil error means the
// call failed at the transport or protocol level; a business decline is a
// normal result, not an error.
type BankGateway interface {
	ProcessPayment(ctx context.Context, order *BankPaymentOrder) (*BankPaymentResult, error)
}
