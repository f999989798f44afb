package infrastructure

import (
	"github.com/MarcJHerz/hoodfy-payments-service/internal/infrastructure/database"
	httpfx "github.com/MarcJHerz/hoodfy-payments-service/internal/infrastructure/http"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/infrastructure/kafka"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/infrastructure/logger"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/infrastructure/metrics"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/infrastructure/stripeclient"
	"go.uber.org/fx"
)

// Module aggregates all infrastructure modules
var Module = fx.Module("infrastructure",
	logger.Module,
	metrics.Module,
	database.Module,
	kafka.Module,
	stripeclient.Module,
	httpfx.Module,
)
