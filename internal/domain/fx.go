package domain

import (
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments"
	"go.uber.org/fx"
)

var Module = fx.Module(
	"domain",
	payments.Module,
)
