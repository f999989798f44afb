package stripeclient

import (
	"github.com/MarcJHerz/hoodfy-payments-service/config"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

var Module = fx.Module(
	"stripeclient",
	fx.Provide(NewGatewayFx),
)

func NewGatewayFx(cfg *config.StripeConfig, logger zerolog.Logger) *Gateway {
	return NewGateway(cfg.SecretKey, cfg.RequestTimeout, logger)
}
