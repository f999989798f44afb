package app

import (
	"github.com/MarcJHerz/hoodfy-payments-service/config"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/infrastructure"
	"go.uber.org/fx"
)

// CreateApp creates the fx application options
func CreateApp() fx.Option {
	return fx.Options(
		fx.Provide(config.Out),
		infrastructure.Module,
		domain.Module,
	)
}
