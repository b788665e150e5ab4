package service

import (
	"context"
	"math/rand/v2"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
)

// SimulatedGateway accepts a charge with probability successRate.
type SimulatedGateway struct {
	successRate float64
	draw        func() float64
}

func NewSimulatedGateway(successRate float64) *SimulatedGateway {
	return &SimulatedGateway{
		successRate: successRate,
		draw:        rand.Float64,
	}
}

func (g *SimulatedGateway) Charge(ctx context.Context, _ domain.Order) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return g.draw() < g.successRate, nil
}

// GatewayFunc adapts a function to port.PaymentGateway.
type GatewayFunc func(ctx context.Context, order domain.Order) (bool, error)

func (f GatewayFunc) Charge(ctx context.Context, order domain.Order) (bool, error) {
	return f(ctx, order)
}
