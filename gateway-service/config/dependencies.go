package config

import (
	"context"
	"fmt"
	"log"

	"github.com/acmepay/payment-gateway/gateway-service/application"
	"github.com/acmepay/payment-gateway/gateway-service/domain"
	"github.com/acmepay/payment-gateway/gateway-service/handlers"
	"github.com/acmepay/payment-gateway/gateway-service/infrastructure"
	sharedinfra "github.com/acmepay/payment-gateway/shared/infrastructure"
	"github.com/acmepay/payment-gateway/shared/telemetry"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	PaymentRepository *infrastructure.PostgresPaymentRepository

	// Use Cases
	ProcessPayment *application.ProcessPayment
	GetPayment     *application.GetPayment

	// HTTP Handlers
	PaymentHandlers *handlers.PaymentHandlers

	// Infrastructure
	EventPublisher *sharedinfra.SNSEventPublisher
	BankGateway    *infrastructure.AcmeBankClient

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	// Initialize telemetry first
	if config.Telemetry.Enabled {
		telConfig := telemetry.GatewayServiceConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
		tel, telemetryShutdown, err := telemetry.InitTelemetry(ctx, telConfig)
		if err != nil {
			log.Printf("Failed to initialize telemetry: %v", err)
			// Continue without telemetry rather than failing
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
		}
	}

	// Initialize database
	db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := infrastructure.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	deps.DB = db

	// Initialize AWS infrastructure
	eventPublisher, err := sharedinfra.NewSNSEventPublisherFromEnv(ctx, config.AWS.SNSTopicArn)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create SNS publisher: %w", err)
	}
	deps.EventPublisher = eventPublisher

	// Initialize acquiring bank client
	deps.BankGateway = infrastructure.NewAcmeBankClient(config.Bank.BaseURL, config.Bank.RequestTimeout)

	// Initialize repositories
	deps.PaymentRepository = infrastructure.NewPostgresPaymentRepository(db)

	// Initialize domain services
	validator := domain.NewRequestValidator(
		domain.NewCardNumberValidator(),
		domain.NewCurrencyValidator(),
		domain.NewClock(),
	)

	// Initialize use cases
	deps.ProcessPayment = application.NewProcessPayment(validator, deps.BankGateway, deps.PaymentRepository, eventPublisher)
	deps.GetPayment = application.NewGetPayment(deps.PaymentRepository)

	// Initialize handlers
	deps.PaymentHandlers = handlers.NewPaymentHandlers(deps.ProcessPayment, deps.GetPayment)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
