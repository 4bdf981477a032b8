package jump

import (
	"context"

	"ai-showroom-be/pkg/funnel/fuzzy"
)

// OutcomeKind enumerates every composition of the two-stage resolution.
type OutcomeKind int

const (
	// BrandNotFound: brand missed the catalog; the model guess is discarded
	// and the funnel asks for the brand again.
	BrandNotFound OutcomeKind = iota
	// BrandAsk: brand needs confirmation; the raw model text rides along so
	// confirming the brand re-triggers model resolution without another
	// oracle call.
	BrandAsk
	// ModelMenu: brand committed, model missed; fall back to the paginated
	// model menu for that brand.
	ModelMenu
	// ModelAsk: brand committed, model needs confirmation.
	ModelAsk
	// Resolved: both entities committed; the funnel skips the model menu
	// entirely.
	Resolved
)

type Outcome struct {
	Kind       OutcomeKind
	Brand      string
	BrandScore float64
	Model      string
	ModelScore float64
	RawModel   string // original model text, kept for deferred resolution
}

// ModelCatalogProvider fetches the model list scoped to a resolved brand.
type ModelCatalogProvider func(ctx context.Context, brand string) ([]string, error)

// Resolve composes the outcome when the oracle extracted both a brand and a
// model from one message. Each entity is fuzzy-resolved independently; the
// oracle is never consulted again. The model catalog is fetched only once
// the brand auto-applies. A catalog fetch failure is the only error and is
// configuration-class.
func Resolve(ctx context.Context, brand, model string, brandCatalog []string, modelsFor ModelCatalogProvider, applyThreshold, askThreshold float64) (Outcome, error) {
	brandOutcome := fuzzy.Match(brand, brandCatalog, applyThreshold, askThreshold)

	switch brandOutcome.Kind {
	case fuzzy.KindNotFound:
		return Outcome{Kind: BrandNotFound, BrandScore: brandOutcome.Score}, nil

	case fuzzy.KindAsk:
		return Outcome{
			Kind:       BrandAsk,
			Brand:      brandOutcome.Value,
			BrandScore: brandOutcome.Score,
			RawModel:   model,
		}, nil
	}

	// Brand auto-applied: resolve the model against its scoped catalog.
	modelCatalog, err := modelsFor(ctx, brandOutcome.Value)
	if err != nil {
		return Outcome{}, err
	}

	modelOutcome := fuzzy.Match(model, modelCatalog, applyThreshold, askThreshold)
	out := Outcome{
		Brand:      brandOutcome.Value,
		BrandScore: brandOutcome.Score,
		RawModel:   model,
	}

	switch modelOutcome.Kind {
	case fuzzy.KindApply:
		out.Kind = Resolved
		out.Model = modelOutcome.Value
		out.ModelScore = modelOutcome.Score
	case fuzzy.KindAsk:
		out.Kind = ModelAsk
		out.Model = modelOutcome.Value
		out.ModelScore = modelOutcome.Score
	default:
		out.Kind = ModelMenu
		out.ModelScore = modelOutcome.Score
	}
	return out, nil
}
