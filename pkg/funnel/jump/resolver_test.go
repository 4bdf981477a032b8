package jump

import (
	"context"
	"errors"
	"testing"

	"ai-showroom-be/pkg/funnel/fuzzy"
)

func staticModels(models []string) ModelCatalogProvider {
	return func(ctx context.Context, brand string) ([]string, error) {
		return models, nil
	}
}

func failingModels(err error) ModelCatalogProvider {
	return func(ctx context.Context, brand string) ([]string, error) {
		return nil, err
	}
}

func TestResolveFullJump(t *testing.T) {
	out, err := Resolve(context.Background(),
		"Toyota", "Camry",
		[]string{"Toyota", "Tofas"},
		staticModels([]string{"Camry", "Corolla", "RAV4"}),
		fuzzy.DefaultApplyThreshold, fuzzy.DefaultAskThreshold,
	)
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind != Resolved {
		t.Fatalf("kind = %v, want Resolved", out.Kind)
	}
	if out.Brand != "Toyota" || out.Model != "Camry" {
		t.Errorf("resolved pair = %s/%s, want Toyota/Camry", out.Brand, out.Model)
	}
}

// Scenario from the field: "Ауди кватро" extracted as {Audi, Quattro}; the
// brand catalog carries Audi but no Audi model resembles Quattro. The brand
// commits and the funnel falls back to the model menu, never a dead end.
func TestResolveBrandAppliedModelMissed(t *testing.T) {
	out, err := Resolve(context.Background(),
		"Audi", "Quattro",
		[]string{"Audi", "BMW", "Skoda"},
		staticModels([]string{"A4", "A6", "Q5"}),
		fuzzy.DefaultApplyThreshold, fuzzy.DefaultAskThreshold,
	)
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind != ModelMenu {
		t.Fatalf("kind = %v, want ModelMenu", out.Kind)
	}
	if out.Brand != "Audi" {
		t.Errorf("brand = %q, want committed Audi", out.Brand)
	}
	if out.BrandScore < 95 {
		t.Errorf("brand score = %v, want >= 95 for an exact name", out.BrandScore)
	}
	if out.Model != "" {
		t.Errorf("model = %q, want empty after a miss", out.Model)
	}
}

func TestResolveBrandAskKeepsRawModel(t *testing.T) {
	// "Tayo" vs "Toyota" scores 60, the inclusive lower bound of the ask
	// band. The raw model text must survive for deferred resolution.
	out, err := Resolve(context.Background(),
		"Tayo", "Camry",
		[]string{"Toyota", "Nissan"},
		failingModels(errors.New("must not be called before the brand is confirmed")),
		fuzzy.DefaultApplyThreshold, fuzzy.DefaultAskThreshold,
	)
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind != BrandAsk {
		t.Fatalf("kind = %v (brand score %v), want BrandAsk", out.Kind, out.BrandScore)
	}
	if out.Brand != "Toyota" {
		t.Errorf("tentative brand = %q, want Toyota", out.Brand)
	}
	if out.RawModel != "Camry" {
		t.Errorf("raw model = %q, want preserved Camry", out.RawModel)
	}
}

func TestResolveBrandNotFoundDiscardsModel(t *testing.T) {
	out, err := Resolve(context.Background(),
		"zzzzzz", "Camry",
		[]string{"Toyota", "Nissan"},
		failingModels(errors.New("must not be called for an unknown brand")),
		fuzzy.DefaultApplyThreshold, fuzzy.DefaultAskThreshold,
	)
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind != BrandNotFound {
		t.Fatalf("kind = %v, want BrandNotFound", out.Kind)
	}
	if out.Brand != "" || out.Model != "" || out.RawModel != "" {
		t.Errorf("outcome should carry no entities, got %+v", out)
	}
}

func TestResolveModelAsk(t *testing.T) {
	// "Camri" vs "Camry" scores in the ask band.
	out, err := Resolve(context.Background(),
		"Toyota", "Cemri",
		[]string{"Toyota"},
		staticModels([]string{"Camry", "Corolla"}),
		fuzzy.DefaultApplyThreshold, fuzzy.DefaultAskThreshold,
	)
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind != ModelAsk {
		t.Fatalf("kind = %v (model score %v), want ModelAsk", out.Kind, out.ModelScore)
	}
	if out.Model != "Camry" {
		t.Errorf("tentative model = %q, want Camry", out.Model)
	}
}

func TestResolveCatalogFailurePropagates(t *testing.T) {
	boom := errors.New("catalog down")
	_, err := Resolve(context.Background(),
		"Toyota", "Camry",
		[]string{"Toyota"},
		failingModels(boom),
		fuzzy.DefaultApplyThreshold, fuzzy.DefaultAskThreshold,
	)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want the catalog error", err)
	}
}
