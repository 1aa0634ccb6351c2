package application

import (
	"context"
	"strings"

	"github.com/acmepay/payment-gateway/gateway-service/domain"
	"github.com/acmepay/payment-gateway/shared/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrPaymentNotFound is returned when no payment record exists for an id
var ErrPaymentNotFound = errors.New("payment not found")

// GetPaymentQuery represents the query to get a processed payment
type GetPaymentQuery struct {
	PaymentID string `json:"paymentId"`
}

// GetPaymentResponse is the read projection of a payment record. The card
// number is masked; everything else passes through unchanged.
type GetPaymentResponse struct {
	PaymentRequestID       string               `json:"paymentRequestId"`
	Status                 domain.PaymentStatus `json:"status"`
	BankTransactionID      *string              `json:"bankTransactionId"`
	BankErrorDescription   *string              `json:"bankErrorDescription"`
	MaskedCreditCardNumber string               `json:"maskedCreditCardNumber"`
	ExpiryMonth            int                  `json:"expiryMonth"`
	ExpiryYear             int                  `json:"expiryYear"`
	Amount                 decimal.Decimal      `json:"amount"`
	Currency               string               `json:"currency"`
	CustomerName           string               `json:"customerName"`
	Reference              string               `json:"reference"`
}

// GetPayment use case
type GetPayment struct {
	paymentRepository domain.PaymentRepository
}

// NewGetPayment creates a new GetPayment use case
func NewGetPayment(paymentRepository domain.PaymentRepository) *GetPayment {
	return &GetPayment{
		paymentRepository: paymentRepository,
	}
}

// Execute executes the get payment use case
func (uc *GetPayment) Execute(ctx context.Context, query *GetPaymentQuery) (*GetPaymentResponse, error) {
	if query == nil || query.PaymentID == "" {
		return nil, errors.New("payment ID is required")
	}

	paymentID, err := models.NewID(query.PaymentID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid payment ID")
	}

	payment, err := uc.paymentRepository.FindByID(ctx, paymentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find payment")
	}

	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	var bankTransactionID *string
	if payment.BankTransactionID != nil {
		id := payment.BankTransactionID.String()
		bankTransactionID = &id
	}

	return &GetPaymentResponse{
		PaymentRequestID:       payment.ID.String(),
		Status:                 payment.Status,
		BankTransactionID:      bankTransactionID,
		BankErrorDescription:   payment.BankErrorDescription,
		MaskedCreditCardNumber: maskCardNumber(payment.CreditCardNumber),
		ExpiryMonth:            payment.ExpiryMonth,
		ExpiryYear:             payment.ExpiryYear,
		Amount:                 payment.Amount,
		Currency:               payment.Currency,
		CustomerName:           payment.CustomerName,
		Reference:              payment.Reference,
	}, nil
}

// maskCardNumber keeps the last four characters and replaces the rest with
// asterisks, preserving the original length. Stored card numbers are already
// length-checked to at least twelve characters.
func maskCardNumber(number string) string {
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
