package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Provider is the read-only catalog surface consumed by the funnel. Lists
// are ordered and tenant-scoped; the funnel re-fetches per step and pins
// the fetched list into session slots for pagination stability.
type Provider interface {
	ListCategories(ctx context.Context, tenantId uuid.UUID) ([]string, error)
	ListBrands(ctx context.Context, tenantId uuid.UUID) ([]string, error)
	ListModels(ctx context.Context, tenantId uuid.UUID, brand string) ([]string, error)
	ListBodyTypes(ctx context.Context, tenantId uuid.UUID, brand, model string) ([]string, error)
	ListOptionPacks(ctx context.Context, tenantId uuid.UUID) ([]string, error)
	FindAvailability(ctx context.Context, tenantId uuid.UUID, brand, model string) (bool, error)
}
