package pricing

import (
	"context"
	"fmt"

	"ai-showroom-be/internal/entity"
	"ai-showroom-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Line is one row of a quote breakdown.
type Line struct {
	Label  string
	Amount int64
}

// Quote is the priced summary shown on the order confirmation step.
type Quote struct {
	Total int64
	Lines []Line
}

// Service produces a quote for a configured vehicle. It is consumed once
// per funnel, after options are selected; a failure here must degrade to
// "price unavailable" in the caller, never abort the funnel.
type Service interface {
	Quote(ctx context.Context, tenantId uuid.UUID, brand, model, bodyType string, options []string) (*Quote, error)
}

type service struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewService(uowFactory unitofwork.RepositoryFactory) Service {
	return &service{uowFactory: uowFactory}
}

func (s *service) Quote(ctx context.Context, tenantId uuid.UUID, brand, model, bodyType string, options []string) (*Quote, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	b, err := uow.BrandRepository().FindByName(ctx, tenantId, brand)
	if err != nil {
		return nil, fmt.Errorf("quote: resolve brand: %w", err)
	}
	if b == nil {
		return nil, fmt.Errorf("quote: unknown brand %q", brand)
	}

	vm, err := uow.VehicleModelRepository().FindByName(ctx, tenantId, b.Id, model)
	if err != nil {
		return nil, fmt.Errorf("quote: resolve model: %w", err)
	}
	if vm == nil {
		return nil, fmt.Errorf("quote: unknown model %q", model)
	}

	packs, err := uow.OptionPackRepository().FindByNames(ctx, tenantId, options)
	if err != nil {
		return nil, fmt.Errorf("quote: resolve options: %w", err)
	}

	return Compose(vm, bodyType, packs), nil
}

// Compose assembles the breakdown: model base price, body-type delta, then
// one line per option pack. Pure; split out so it can be tested without a
// database.
func Compose(vm *entity.VehicleModel, bodyType string, packs []*entity.OptionPack) *Quote {
	q := &Quote{}

	q.Lines = append(q.Lines, Line{
		Label:  fmt.Sprintf("%s base price", vm.Name),
		Amount: vm.BasePrice,
	})
	q.Total = vm.BasePrice

	if bodyType != "" {
		for _, bt := range vm.BodyTypes {
			if bt.Name == bodyType && bt.PriceDelta != 0 {
				q.Lines = append(q.Lines, Line{Label: bodyType, Amount: bt.PriceDelta})
				q.Total += bt.PriceDelta
				break
			}
		}
	}

	for _, pack := range packs {
		q.Lines = append(q.Lines, Line{Label: pack.Name, Amount: pack.Price})
		q.Total += pack.Price
	}

	return q
}
