package domain

import (
	"testing"

	"github.com/acmepay/payment-gateway/shared/events"
	"github.com/acmepay/payment-gateway/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	transactionID := models.GenerateUUID()
	declineReason := "Insufficient Funds"

	tests := []struct {
		name          string
		outcome       BankOutcome
		expectedTopic events.Topic
	}{
		{
			name: "successful outcome",
			outcome: BankOutcome{
				Status:            PaymentStatusSuccessful,
				BankTransactionID: &transactionID,
			},
			expectedTopic: events.PaymentSuccessfulEvent,
		},
		{
			name: "declined outcome",
			outcome: BankOutcome{
				Status:               PaymentStatusUnsuccessful,
				BankTransactionID:    &transactionID,
				BankErrorDescription: &declineReason,
			},
			expectedTopic: events.PaymentUnsuccessfulEvent,
		},
		{
			name: "bank unreachable outcome",
			outcome: BankOutcome{
				Status:               PaymentStatusUnableToProcess,
				BankErrorDescription: stringPtr(UnableToProcessDescription),
			},
			expectedTopic: events.PaymentUnableToProcessEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := validRequest()

			payment := NewPayment(request, tt.outcome)

			assert.NotEmpty(t, payment.ID)
			_, err := models.NewID(payment.ID.String())
			assert.NoError(t, err)

			assert.Equal(t, tt.outcome.Status, payment.Status)
			assert.Equal(t, tt.outcome.BankTransactionID, payment.BankTransactionID)
			assert.Equal(t, tt.outcome.BankErrorDescription, payment.BankErrorDescription)

			// Request fields are stored verbatim, card number included
			assert.Equal(t, request.CreditCardNumber, payment.CreditCardNumber)
			assert.Equal(t, request.CVV, payment.CVV)
			assert.Equal(t, request.ExpiryMonth, payment.ExpiryMonth)
			assert.Equal(t, request.ExpiryYear, payment.ExpiryYear)
			assert.True(t, request.Amount.Equal(payment.Amount))
			assert.Equal(t, request.Currency, payment.Currency)
			assert.Equal(t, request.CustomerName, payment.CustomerName)
			assert.Equal(t, request.Reference, payment.Reference)

			require.Len(t, payment.Events(), 1)
			assert.Equal(t, tt.expectedTopic, payment.Events()[0].Topic)
			assert.Equal(t, payment.ID, payment.Events()[0].AggregateID)
		})
	}
}

func stringPtr(s string) *string {
	return &s
}
