package application

import (
	"context"
	"log"

	"github.com/acmepay/payment-gateway/gateway-service/domain"
	"github.com/acmepay/payment-gateway/shared/events"
	"github.com/acmepay/payment-gateway/shared/telemetry"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// ProcessPaymentCommand represents the command to process a card payment
type ProcessPaymentCommand struct {
	CreditCardNumber string          `json:"creditCardNumber"`
	CVV              string          `json:"cvv,omitempty"`
	ExpiryMonth      int             `json:"expiryMonth"`
	ExpiryYear       int             `json:"expiryYear"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	CustomerName     string          `json:"customerName"`
	Reference        string          `json:"reference,omitempty"`
}

// ProcessPaymentResponse carries either the persisted outcome or the
// validation errors that rejected the request.
type ProcessPaymentResponse struct {
	PaymentRequestID string                   `json:"paymentRequestId,omitempty"`
	Status           domain.PaymentStatus     `json:"status,omitempty"`
	ValidationErrors []domain.ValidationError `json:"validationErrors,omitempty"`
}

// Rejected reports whether the request failed validation
func (r *ProcessPaymentResponse) Rejected() bool {
	return len(r.ValidationErrors) > 0
}

// ProcessPayment use case: validate, forward to the bank once, persist the
// terminal outcome.
type ProcessPayment struct {
	validator         domain.Validator
	bankGateway       domain.BankGateway
	paymentRepository domain.PaymentRepository
	eventPublisher    events.Publisher
}

// NewProcessPayment creates a new ProcessPayment use case
func NewProcessPayment(
	validator domain.Validator,
	bankGateway domain.BankGateway,
	paymentRepository domain.PaymentRepository,
	eventPublisher events.Publisher,
) *ProcessPayment {
	return &ProcessPayment{
		validator:         validator,
		bankGateway:       bankGateway,
		paymentRepository: paymentRepository,
		eventPublisher:    eventPublisher,
	}
}

// Execute executes the process payment use case. A rejected request performs
// no bank call and no persistence. A failed bank call is recorded as
// unable-to-process, not surfaced as an error.
func (uc *ProcessPayment) Execute(ctx context.Context, cmd *ProcessPaymentCommand) (*ProcessPaymentResponse, error) {
	if cmd == nil {
		return nil, errors.New("command is required")
	}

	ctx, span := telemetry.StartSpan(ctx, "process_payment")
	defer span.End()

	request := &domain.PaymentRequest{
		CreditCardNumber: cmd.CreditCardNumber,
		CVV:              cmd.CVV,
		ExpiryMonth:      cmd.ExpiryMonth,
		ExpiryYear:       cmd.ExpiryYear,
		Amount:           cmd.Amount,
		Currency:         cmd.Currency,
		CustomerName:     cmd.CustomerName,
		Reference:        cmd.Reference,
	}

	validationErrors, err := uc.validator.Validate(request)
	if err != nil {
		return nil, errors.Wrap(err, "invalid command")
	}

	if len(validationErrors) > 0 {
		telemetry.RecordCounter(ctx, "payments_rejected_total", "Payments rejected by validation", 1)
		return &ProcessPaymentResponse{
			ValidationErrors: validationErrors,
		}, nil
	}

	outcome := uc.submitToBank(ctx, request)

	payment := domain.NewPayment(request, outcome)

	if err := uc.paymentRepository.Insert(ctx, payment); err != nil {
		return nil, errors.Wrap(err, "failed to save payment")
	}

	// Outcome is already persisted; event delivery is best effort.
	if err := uc.eventPublisher.Publish(ctx, payment.Events()...); err != nil {
		log.Printf("failed to publish payment events for %s: %v", payment.ID, err)
	}

	telemetry.RecordCounter(ctx, "payments_processed_total", "Payments processed", 1,
		attribute.String("status", string(payment.Status)),
	)

	return &ProcessPaymentResponse{
		PaymentRequestID: payment.ID.String(),
		Status:           payment.Status,
	}, nil
}

// submitToBank performs the single bank call attempt and maps its result.
// Only transport or protocol failures degrade to unable-to-process.
func (uc *ProcessPayment) submitToBank(ctx context.Context, request *domain.PaymentRequest) domain.BankOutcome {
	result, err := uc.bankGateway.ProcessPayment(ctx, &domain.BankPaymentOrder{
		CreditCardNumber: request.CreditCardNumber,
		CVV:              request.CVV,
		ExpiryMonth:      request.ExpiryMonth,
		ExpiryYear:       request.ExpiryYear,
		Amount:           request.Amount,
		Currency:         request.Currency,
		CustomerName:     request.CustomerName,
	})
	if err != nil {
		log.Printf("bank call failed: %v", err)

		description := domain.UnableToProcessDescription
		return domain.BankOutcome{
			Status:               domain.PaymentStatusUnableToProcess,
			BankErrorDescription: &description,
		}
	}

	status := domain.PaymentStatusUnsuccessful
	if result.WasSuccessful {
		status = domain.PaymentStatusSuccessful
	}

	transactionID := result.TransactionID

	var description *string
	if result.Error != "" {
		description = &result.Error
	}

	return domain.BankOutcome{
		Status:               status,
		BankTransactionID:    &transactionID,
		BankErrorDescription: description,
	}
}
