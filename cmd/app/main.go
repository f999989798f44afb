package main

import (
	"github.com/MarcJHerz/hoodfy-payments-service/internal/app"
	"go.uber.org/fx"
)

func main() {
	fx.New(app.CreateApp()).Run()
}
