package business

import (
	"context"
	"sync"

	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/deps"
	payerrors "github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/errors"
	"github.com/rs/zerolog"
)

// PriceCatalog resolves nominal amounts to provider-side price identifiers.
// Resolved identifiers are cached per amount; a cached identifier is
// revalidated against the provider before reuse so provider-side deletion or
// drift is repaired instead of propagated into a checkout session.
type PriceCatalog struct {
	gateway deps.ProviderGateway
	logger  zerolog.Logger

	mu    sync.Mutex
	cache map[int64]string
}

func NewPriceCatalog(gateway deps.ProviderGateway, logger zerolog.Logger) *PriceCatalog {
	return &PriceCatalog{
		gateway: gateway,
		logger:  logger,
		cache:   make(map[int64]string),
	}
}

// Resolve returns a valid provider price identifier for the given amount,
// creating one when none exists. Creation failure fails closed with
// ErrNoValidPrice so no checkout session is built on an unverified
// identifier.
func (c *PriceCatalog) Resolve(ctx context.Context, amount int64) (string, error) {
	if amount < 0 {
		return "", payerrors.ErrInvalidAmount
	}

	c.mu.Lock()
	cached, ok := c.cache[amount]
	c.mu.Unlock()

	if ok && c.gateway.ValidatePrice(ctx, cached) {
		return cached, nil
	}

	if ok {
		c.logger.Warn().
			Str("price_id", cached).
			Int64("amount", amount).
			Msg("cached price no longer resolves on provider, creating replacement")
	}

	priceID, err := c.gateway.CreatePrice(ctx, amount)
	if err != nil {
		c.logger.Error().Err(err).
			Int64("amount", amount).
			Msg("failed to create provider price")
		return "", payerrors.ErrNoValidPrice
	}

	c.mu.Lock()
	c.cache[amount] = priceID
	c.mu.Unlock()

	c.logger.Info().
		Str("price_id", priceID).
		Int64("amount", amount).
		Msg("provider price created")

	return priceID, nil
}

// Validate reports whether the identifier still resolves on the provider side
func (c *PriceCatalog) Validate(ctx context.Context, priceID string) bool {
	if priceID == "" {
		return false
	}
	return c.gateway.ValidatePrice(ctx, priceID)
}
