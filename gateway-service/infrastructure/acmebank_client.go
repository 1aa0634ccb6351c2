package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/acmepay/payment-gateway/gateway-service/domain"
	"github.com/acmepay/payment-gateway/shared/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const processPaymentPath = "/payments/process"

// AcmeBankClient implements BankGateway against the Acme bank HTTP API
type AcmeBankClient struct {
	baseURL string
	client  *http.Client
}

// NewAcmeBankClient creates a new AcmeBankClient
func NewAcmeBankClient(baseURL string, timeout time.Duration) *AcmeBankClient {
	return &AcmeBankClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type acmeProcessPaymentRequest struct {
	CreditCardNumber string          `json:"creditCardNumber"`
	CVV              string          `json:"cvv,omitempty"`
	ExpiryMonth      int             `json:"expiryMonth"`
	ExpiryYear       int             `json:"expiryYear"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	CustomerName     string          `json:"customerName"`
}

type acmeProcessPaymentResult struct {
	ID            string `json:"id"`
	WasSuccessful bool   `json:"wasSuccessful"`
	Error         string `json:"error"`
}

// ProcessPayment performs the single payment call against the bank. Every
// returned error is a transport or protocol failure; a business decline comes
// back as a result with WasSuccessful false.
func (c *AcmeBankClient) ProcessPayment(ctx context.Context, order *domain.BankPaymentOrder) (*domain.BankPaymentResult, error) {
	body, err := json.Marshal(acmeProcessPaymentRequest{
		CreditCardNumber: order.CreditCardNumber,
		CVV:              order.CVV,
		ExpiryMonth:      order.ExpiryMonth,
		ExpiryYear:       order.ExpiryYear,
		Amount:           order.Amount,
		Currency:         order.Currency,
		CustomerName:     order.CustomerName,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal bank request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+processPaymentPath, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create bank request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call bank")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("bank returned unexpected status %d", resp.StatusCode)
	}

	var result acmeProcessPaymentResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "failed to decode bank response")
	}

	transactionID, err := models.NewID(result.ID)
	if err != nil {
		return nil, errors.Wrap(err, "bank returned invalid transaction ID")
	}

	return &domain.BankPaymentResult{
		TransactionID: transactionID,
		WasSuccessful: result.WasSuccessful,
		Error:         result.Error,
	}, nil
}
