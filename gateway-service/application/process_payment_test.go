package application

import (
	"context"
	"testing"
	"time"

	"github.com/acmepay/payment-gateway/gateway-service/domain"
	"github.com/acmepay/payment-gateway/gateway-service/mocks"
	"github.com/acmepay/payment-gateway/shared/events"
	"github.com/acmepay/payment-gateway/shared/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func newValidator() domain.Validator {
	return domain.NewRequestValidator(
		domain.NewCardNumberValidator(),
		domain.NewCurrencyValidator(),
		fixedClock{now: time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC)},
	)
}

func validCommand() *ProcessPaymentCommand {
	return &ProcessPaymentCommand{
		CreditCardNumber: "111111111113",
		CVV:              "123",
		ExpiryMonth:      7,
		ExpiryYear:       2020,
		Amount:           decimal.NewFromFloat(10.50),
		Currency:         "GBP",
		CustomerName:     "John Smith",
		Reference:        "order-001",
	}
}

func TestProcessPayment_Execute_OutcomeMapping(t *testing.T) {
	bankTransactionID := models.GenerateUUID()

	tests := []struct {
		name                string
		bankResult          *domain.BankPaymentResult
		bankErr             error
		expectedStatus      domain.PaymentStatus
		expectedTopic       events.Topic
		expectTransactionID bool
		expectedDescription *string
	}{
		{
			name: "bank accepts the payment",
			bankResult: &domain.BankPaymentResult{
				TransactionID: bankTransactionID,
				WasSuccessful: true,
			},
			expectedStatus:      domain.PaymentStatusSuccessful,
			expectedTopic:       events.PaymentSuccessfulEvent,
			expectTransactionID: true,
			expectedDescription: nil,
		},
		{
			name: "bank declines the payment",
			bankResult: &domain.BankPaymentResult{
				TransactionID: bankTransactionID,
				WasSuccessful: false,
				Error:         "Insufficient Funds",
			},
			expectedStatus:      domain.PaymentStatusUnsuccessful,
			expectedTopic:       events.PaymentUnsuccessfulEvent,
			expectTransactionID: true,
			expectedDescription: stringPtr("Insufficient Funds"),
		},
		{
			name:                "bank is unreachable",
			bankErr:             errors.New("connection refused"),
			expectedStatus:      domain.PaymentStatusUnableToProcess,
			expectedTopic:       events.PaymentUnableToProcessEvent,
			expectTransactionID: false,
			expectedDescription: stringPtr("Unable to process with bank"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBank := mocks.NewMockBankGateway(t)
			mockRepo := mocks.NewMockPaymentRepository(t)
			mockPublisher := mocks.NewMockPublisher(t)

			cmd := validCommand()

			mockBank.EXPECT().ProcessPayment(mock.Anything, mock.MatchedBy(func(order *domain.BankPaymentOrder) bool {
				return order.CreditCardNumber == cmd.CreditCardNumber &&
					order.CVV == cmd.CVV &&
					order.ExpiryMonth == cmd.ExpiryMonth &&
					order.ExpiryYear == cmd.ExpiryYear &&
					order.Amount.Equal(cmd.Amount) &&
					order.Currency == cmd.Currency &&
					order.CustomerName == cmd.CustomerName
			})).Return(tt.bankResult, tt.bankErr).Once()

			var persisted *domain.Payment
			mockRepo.EXPECT().Insert(mock.Anything, mock.AnythingOfType("*domain.Payment")).
				Run(func(ctx context.Context, payment *domain.Payment) {
					persisted = payment
				}).Return(nil).Once()

			mockPublisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
				return evt.Topic == tt.expectedTopic
			})).Return(nil).Once()

			useCase := NewProcessPayment(newValidator(), mockBank, mockRepo, mockPublisher)

			response, err := useCase.Execute(context.Background(), cmd)

			require.NoError(t, err)
			require.NotNil(t, response)
			assert.False(t, response.Rejected())
			assert.Equal(t, tt.expectedStatus, response.Status)
			assert.NotEmpty(t, response.PaymentRequestID)

			require.NotNil(t, persisted)
			assert.Equal(t, response.PaymentRequestID, persisted.ID.String())
			assert.Equal(t, tt.expectedStatus, persisted.Status)
			assert.Equal(t, tt.expectedDescription, persisted.BankErrorDescription)

			if tt.expectTransactionID {
				require.NotNil(t, persisted.BankTransactionID)
				assert.Equal(t, bankTransactionID, *persisted.BankTransactionID)
			} else {
				assert.Nil(t, persisted.BankTransactionID)
			}

			// Request fields are stored verbatim
			assert.Equal(t, cmd.CreditCardNumber, persisted.CreditCardNumber)
			assert.True(t, cmd.Amount.Equal(persisted.Amount))
			assert.Equal(t, cmd.Reference, persisted.Reference)
		})
	}
}

func TestProcessPayment_Execute_RejectedRequestTouchesNothing(t *testing.T) {
	tests := []struct {
		name           string
		mutate         func(*ProcessPaymentCommand)
		expectedErrors []domain.ValidationError
	}{
		{
			name: "invalid card number",
			mutate: func(cmd *ProcessPaymentCommand) {
				cmd.CreditCardNumber = "1234"
			},
			expectedErrors: []domain.ValidationError{
				{Attribute: stringPtr("CreditCardNumber"), Message: "Credit card number is invalid"},
			},
		},
		{
			name: "expired card and unsupported currency",
			mutate: func(cmd *ProcessPaymentCommand) {
				cmd.Currency = "USD"
				cmd.ExpiryMonth = 6
				cmd.ExpiryYear = 2020
			},
			expectedErrors: []domain.ValidationError{
				{Attribute: stringPtr("Currency"), Message: "Currency not supported"},
				{Message: "Card has expired"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No expectations: the bank, the store and the publisher must not be called
			mockBank := mocks.NewMockBankGateway(t)
			mockRepo := mocks.NewMockPaymentRepository(t)
			mockPublisher := mocks.NewMockPublisher(t)

			useCase := NewProcessPayment(newValidator(), mockBank, mockRepo, mockPublisher)

			cmd := validCommand()
			tt.mutate(cmd)

			response, err := useCase.Execute(context.Background(), cmd)

			require.NoError(t, err)
			require.NotNil(t, response)
			assert.True(t, response.Rejected())
			assert.Equal(t, tt.expectedErrors, response.ValidationErrors)
			assert.Empty(t, response.PaymentRequestID)
			assert.Empty(t, response.Status)
		})
	}
}

func TestProcessPayment_Execute_NilCommand(t *testing.T) {
	mockBank := mocks.NewMockBankGateway(t)
	mockRepo := mocks.NewMockPaymentRepository(t)
	mockPublisher := mocks.NewMockPublisher(t)

	useCase := NewProcessPayment(newValidator(), mockBank, mockRepo, mockPublisher)

	response, err := useCase.Execute(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, response)
}

func TestProcessPayment_Execute_RepositoryError(t *testing.T) {
	mockBank := mocks.NewMockBankGateway(t)
	mockRepo := mocks.NewMockPaymentRepository(t)
	mockPublisher := mocks.NewMockPublisher(t)

	mockBank.EXPECT().ProcessPayment(mock.Anything, mock.Anything).
		Return(&domain.BankPaymentResult{TransactionID: models.GenerateUUID(), WasSuccessful: true}, nil).Once()
	mockRepo.EXPECT().Insert(mock.Anything, mock.AnythingOfType("*domain.Payment")).
		Return(errors.New("database error")).Once()

	useCase := NewProcessPayment(newValidator(), mockBank, mockRepo, mockPublisher)

	response, err := useCase.Execute(context.Background(), validCommand())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save payment")
	assert.Nil(t, response)
}

func TestProcessPayment_Execute_PublisherErrorDoesNotFailThePayment(t *testing.T) {
	mockBank := mocks.NewMockBankGateway(t)
	mockRepo := mocks.NewMockPaymentRepository(t)
	mockPublisher := mocks.NewMockPublisher(t)

	mockBank.EXPECT().ProcessPayment(mock.Anything, mock.Anything).
		Return(&domain.BankPaymentResult{TransactionID: models.GenerateUUID(), WasSuccessful: true}, nil).Once()
	mockRepo.EXPECT().Insert(mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil).Once()
	mockPublisher.EXPECT().Publish(mock.Anything, mock.Anything).
		Return(errors.New("sns unavailable")).Once()

	useCase := NewProcessPayment(newValidator(), mockBank, mockRepo, mockPublisher)

	response, err := useCase.Execute(context.Background(), validCommand())

	require.NoError(t, err)
	require.NotNil(t, response)
	assert.Equal(t, domain.PaymentStatusSuccessful, response.Status)
	assert.NotEmpty(t, response.PaymentRequestID)
}

// stringPtr is a helper function to create string pointers
func stringPtr(s string) *string {
	return &s
}
