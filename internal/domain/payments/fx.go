package payments

import (
	"github.com/MarcJHerz/hoodfy-payments-service/config"
	payhttp "github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/delivery/http"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/deps"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/repository/postgres"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/usecase/business"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/infrastructure/http/server"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/infrastructure/kafka"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/infrastructure/metrics"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/infrastructure/stripeclient"
	pkgerrors "github.com/MarcJHerz/hoodfy-payments-service/pkg/errors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

var Module = fx.Module(
	"payments",
	fx.Provide(
		postgres.NewSubscriptionRepository,
		postgres.NewPayoutRepository,
		postgres.NewCommunityRepository,
		postgres.NewAllyRepository,
		postgres.NewUserRepository,

		NewProviderGateway,
		NewNotificationSink,
		NewPriceCatalog,
		NewMembershipSynchronizer,
		NewPayoutLedger,
		NewCheckoutUseCase,
		NewReconciler,

		pkgerrors.NewMapper,
		payhttp.NewWebhookVerifier,
		payhttp.NewWebhookHandler,
		payhttp.NewPaymentsHandler,
		NewHealthHandler,
		payhttp.NewRouter,
	),
	fx.Invoke(registerRoutes),
)

func NewProviderGateway(gateway *stripeclient.Gateway) deps.ProviderGateway {
	return gateway
}

func NewNotificationSink(adapter *kafka.NotificationAdapter) deps.NotificationSink {
	return adapter
}

func NewPriceCatalog(gateway deps.ProviderGateway, logger zerolog.Logger) deps.PriceCatalog {
	return business.NewPriceCatalog(gateway, logger)
}

func NewMembershipSynchronizer(
	communities deps.CommunityRepository,
	allies deps.AllyRepository,
	logger zerolog.Logger,
) deps.MembershipSynchronizer {
	return business.NewMembership(communities, allies, logger)
}

func NewPayoutLedger(payouts deps.PayoutRepository, logger zerolog.Logger) deps.PayoutLedger {
	return business.NewLedger(payouts, logger)
}

func NewCheckoutUseCase(
	users deps.UserRepository,
	communities deps.CommunityRepository,
	subscriptions deps.SubscriptionRepository,
	catalog deps.PriceCatalog,
	gateway deps.ProviderGateway,
	cfg *config.StripeConfig,
	logger zerolog.Logger,
) deps.CheckoutUseCase {
	return business.NewCheckout(users, communities, subscriptions, catalog, gateway, business.CheckoutConfig{
		SuccessURL:      cfg.CheckoutSuccessURL,
		CancelURL:       cfg.CheckoutCancelURL,
		PortalReturnURL: cfg.PortalReturnURL,
	}, logger)
}

func NewReconciler(
	subscriptions deps.SubscriptionRepository,
	communities deps.CommunityRepository,
	membership deps.MembershipSynchronizer,
	ledger deps.PayoutLedger,
	sink deps.NotificationSink,
	m *metrics.Metrics,
	logger zerolog.Logger,
) deps.SubscriptionReconciler {
	return business.NewReconciler(subscriptions, communities, membership, ledger, sink, m, logger)
}

func NewHealthHandler(
	subscriptions deps.SubscriptionRepository,
	producer *kafka.Producer,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *payhttp.HealthHandler {
	return payhttp.NewHealthHandler(subscriptions, producer, m, logger)
}

func registerRoutes(srv *server.Server, router *payhttp.Router) {
	router.RegisterRoutes(srv.Router)
}
