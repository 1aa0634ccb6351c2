package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/acmepay/payment-gateway/gateway-service/domain"
	"github.com/acmepay/payment-gateway/shared/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// PostgresPaymentRepository implements PaymentRepository using PostgreSQL
type PostgresPaymentRepository struct {
	db *sqlx.DB
}

// NewPostgresPaymentRepository creates a new PostgresPaymentRepository
func NewPostgresPaymentRepository(db *sqlx.DB) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

// postgresPayment represents a payment record in the database
type postgresPayment struct {
	ID                   string          `db:"id"`
	Status               string          `db:"status"`
	BankTransactionID    *string         `db:"bank_transaction_id"`
	BankErrorDescription *string         `db:"bank_error_description"`
	CreditCardNumber     string          `db:"credit_card_number"`
	CVV                  string          `db:"cvv"`
	ExpiryMonth          int             `db:"expiry_month"`
	ExpiryYear           int             `db:"expiry_year"`
	Amount               decimal.Decimal `db:"amount"`
	Currency             string          `db:"currency"`
	CustomerName         string          `db:"customer_name"`
	Reference            string          `db:"reference"`
	CreatedAt            time.Time       `db:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at"`
}

// Insert writes the write-once payment record
func (r *PostgresPaymentRepository) Insert(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			id, status, bank_transaction_id, bank_error_description,
			credit_card_number, cvv, expiry_month, expiry_year,
			amount, currency, customer_name, reference,
			created_at, updated_at
		) VALUES (
			:id, :status, :bank_transaction_id, :bank_error_description,
			:credit_card_number, :cvv, :expiry_month, :expiry_year,
			:amount, :currency, :customer_name, :reference,
			:created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, r.toPostgres(payment))
	if err != nil {
		return errors.Wrap(err, "failed to insert payment")
	}

	return nil
}

// FindByID finds a payment by ID; returns (nil, nil) when no record exists
func (r *PostgresPaymentRepository) FindByID(ctx context.Context, id models.ID) (*domain.Payment, error) {
	query := `
		SELECT id, status, bank_transaction_id, bank_error_description,
			   credit_card_number, cvv, expiry_month, expiry_year,
			   amount, currency, customer_name, reference,
			   created_at, updated_at
		FROM payments
		WHERE id = $1`

	var pgPayment postgresPayment
	err := r.db.GetContext(ctx, &pgPayment, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find payment")
	}

	return r.toDomain(&pgPayment)
}

// toPostgres converts a domain payment to the postgres model
func (r *PostgresPaymentRepository) toPostgres(payment *domain.Payment) *postgresPayment {
	var bankTransactionID *string
	if payment.BankTransactionID != nil {
		id := payment.BankTransactionID.String()
		bankTransactionID = &id
	}

	return &postgresPayment{
		ID:                   payment.ID.String(),
		Status:               string(payment.Status),
		BankTransactionID:    bankTransactionID,
		BankErrorDescription: payment.BankErrorDescription,
		CreditCardNumber:     payment.CreditCardNumber,
		CVV:                  payment.CVV,
		ExpiryMonth:          payment.ExpiryMonth,
		ExpiryYear:           payment.ExpiryYear,
		Amount:               payment.Amount,
		Currency:             payment.Currency,
		CustomerName:         payment.CustomerName,
		Reference:            payment.Reference,
		CreatedAt:            payment.Timestamps.CreatedAt,
		UpdatedAt:            payment.Timestamps.UpdatedAt,
	}
}

// toDomain converts a postgres model to a domain payment
func (r *PostgresPaymentRepository) toDomain(pgPayment *postgresPayment) (*domain.Payment, error) {
	id, err := models.NewID(pgPayment.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid payment ID")
	}

	var bankTransactionID *models.ID
	if pgPayment.BankTransactionID != nil {
		transactionID, err := models.NewID(*pgPayment.BankTransactionID)
		if err != nil {
			return nil, errors.Wrap(err, "invalid bank transaction ID")
		}
		bankTransactionID = &transactionID
	}

	return &domain.Payment{
		ID:                   id,
		Status:               domain.PaymentStatus(pgPayment.Status),
		BankTransactionID:    bankTransactionID,
		BankErrorDescription: pgPayment.BankErrorDescription,
		CreditCardNumber:     pgPayment.CreditCardNumber,
		CVV:                  pgPayment.CVV,
		ExpiryMonth:          pgPayment.ExpiryMonth,
		ExpiryYear:           pgPayment.ExpiryYear,
		Amount:               pgPayment.Amount,
		Currency:             pgPayment.Currency,
		CustomerName:         pgPayment.CustomerName,
		Reference:            pgPayment.Reference,
		Timestamps: models.Timestamps{
			CreatedAt: pgPayment.CreatedAt,
			UpdatedAt: pgPayment.UpdatedAt,
		},
	}, nil
}
