package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ai-showroom-be/internal/constant"
	"ai-showroom-be/internal/entity"
	"ai-showroom-be/internal/pkg/logger"
	"ai-showroom-be/internal/repository/contract"
	"ai-showroom-be/internal/repository/memory"
	"ai-showroom-be/internal/repository/specification"
	"ai-showroom-be/internal/repository/unitofwork"
	"ai-showroom-be/pkg/funnel/oracle"
	"ai-showroom-be/pkg/pricing"
	"ai-showroom-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeTenantRepo struct {
	tenant *entity.Tenant
}

func (r *fakeTenantRepo) Create(ctx context.Context, tenant *entity.Tenant) error { return nil }
func (r *fakeTenantRepo) Update(ctx context.Context, tenant *entity.Tenant) error { return nil }
func (r *fakeTenantRepo) FindBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	if r.tenant != nil && r.tenant.Slug == slug {
		return r.tenant, nil
	}
	return nil, nil
}
func (r *fakeTenantRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tenant, error) {
	return r.tenant, nil
}
func (r *fakeTenantRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tenant, error) {
	return []*entity.Tenant{r.tenant}, nil
}

type fakeUow struct {
	tenants contract.TenantRepository
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }
func (u *fakeUow) TenantRepository() contract.TenantRepository { return u.tenants }
func (u *fakeUow) CategoryRepository() contract.CategoryRepository { return nil }
func (u *fakeUow) BrandRepository() contract.BrandRepository { return nil }
func (u *fakeUow) VehicleModelRepository() contract.VehicleModelRepository { return nil }
func (u *fakeUow) OptionPackRepository() contract.OptionPackRepository { return nil }
func (u *fakeUow) LeadRepository() contract.LeadRepository { return nil }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

// fakeCatalog serves a small fixed dealership catalog.
type fakeCatalog struct {
	categories  []string
	brands      []string
	models      map[string][]string
	bodyTypes   map[string][]string
	packs       []string
	unavailable map[string]bool
}

func (c *fakeCatalog) ListCategories(ctx context.Context, tenantId uuid.UUID) ([]string, error) {
	return c.categories, nil
}
func (c *fakeCatalog) ListBrands(ctx context.Context, tenantId uuid.UUID) ([]string, error) {
	return c.brands, nil
}
func (c *fakeCatalog) ListModels(ctx context.Context, tenantId uuid.UUID, brand string) ([]string, error) {
	return c.models[brand], nil
}
func (c *fakeCatalog) ListBodyTypes(ctx context.Context, tenantId uuid.UUID, brand, model string) ([]string, error) {
	return c.bodyTypes[brand+"/"+model], nil
}
func (c *fakeCatalog) ListOptionPacks(ctx context.Context, tenantId uuid.UUID) ([]string, error) {
	return c.packs, nil
}
func (c *fakeCatalog) FindAvailability(ctx context.Context, tenantId uuid.UUID, brand, model string) (bool, error) {
	return !c.unavailable[brand+"/"+model], nil
}

// scriptedExtractor answers from a fixed table and counts invocations.
type scriptedExtractor struct {
	answers map[string]oracle.Entities
	calls   int
}

func (e *scriptedExtractor) Extract(ctx context.Context, text string, ec oracle.Context) oracle.Entities {
	e.calls++
	return e.answers[text]
}

type fakePricing struct {
	quote *pricing.Quote
	err   error
}

func (p *fakePricing) Quote(ctx context.Context, tenantId uuid.UUID, brand, model, bodyType string, options []string) (*pricing.Quote, error) {
	return p.quote, p.err
}

type leadSink struct {
	leads []*entity.Lead
}

func (s *leadSink) Record(ctx context.Context, tenant *entity.Tenant, lead *entity.Lead) error {
	s.leads = append(s.leads, lead)
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error { return nil }
func (noopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (noopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

// --- harness ---

type harness struct {
	funnel    IFunnelService
	sessions  *memory.SessionStore
	extractor *scriptedExtractor
	leads     *leadSink
	sid       string
}

func newHarness(t *testing.T, answers map[string]oracle.Entities) *harness {
	t.Helper()

	tenant := &entity.Tenant{
		Id:     uuid.New(),
		Slug:   "demo-motors",
		Name:   "Demo Motors",
		Active: true,
	}

	cat := &fakeCatalog{
		categories: []string{"New cars"},
		brands:     []string{"Toyota", "Audi"},
		models: map[string][]string{
			"Toyota": {"Camry", "Corolla", "Land Cruiser"},
			"Audi":   {"A4"},
		},
		bodyTypes: map[string][]string{
			"Toyota/Camry": {"Sedan", "Hybrid"},
		},
		packs:       []string{"Winter pack"},
		unavailable: map[string]bool{"Toyota/Land Cruiser": true},
	}

	extractor := &scriptedExtractor{answers: answers}
	sink := &leadSink{}
	sessions := memory.NewSessionStore(time.Minute)

	quote := &pricing.Quote{
		Total: 32400,
		Lines: []pricing.Line{
			{Label: "Camry base price", Amount: 28000},
			{Label: "Hybrid", Amount: 3500},
			{Label: "Winter pack", Amount: 900},
		},
	}

	funnel := NewFunnelService(
		&fakeFactory{uow: &fakeUow{tenants: &fakeTenantRepo{tenant: tenant}}},
		sessions,
		cat,
		extractor,
		&fakePricing{quote: quote},
		sink,
		nil,
		noopLogger{},
		FunnelOptions{},
	)

	return &harness{
		funnel:    funnel,
		sessions:  sessions,
		extractor: extractor,
		leads:     sink,
		sid:       "demo-motors:telegram:42",
	}
}

func (h *harness) send(t *testing.T, text string) string {
	t.Helper()
	reply, err := h.funnel.HandleMessage(context.Background(), "demo-motors", "telegram", "42", text)
	require.NoError(t, err)
	return reply
}

func (h *harness) state() string {
	return h.sessions.Get(h.sid).State
}

// --- tests ---

func TestHappyPathOrder(t *testing.T) {
	h := newHarness(t, nil)

	reply := h.send(t, "/start")
	assert.Contains(t, reply, "New cars")
	assert.Contains(t, reply, constant.ManagerEntryLabel)
	assert.Equal(t, store.StateMainMenu, h.state())

	reply = h.send(t, "1")
	assert.Contains(t, reply, "Toyota")
	assert.Equal(t, store.StateAwaitingBrand, h.state())

	reply = h.send(t, "Toyota")
	assert.Contains(t, reply, "Camry")
	assert.Equal(t, store.StateAwaitingModel, h.state())

	reply = h.send(t, "Camry")
	assert.Contains(t, reply, "Hybrid")
	assert.Equal(t, store.StateSelectingOptions, h.state())

	reply = h.send(t, "2") // Hybrid
	assert.Contains(t, reply, "Winter pack")

	reply = h.send(t, "1") // Winter pack
	assert.Contains(t, reply, "Total: 32400")
	assert.Equal(t, store.StateConfirmingOrder, h.state())

	reply = h.send(t, "1")
	assert.Equal(t, constant.ReplyOrderSubmitted, reply)

	require.Len(t, h.leads.leads, 1)
	lead := h.leads.leads[0]
	assert.Equal(t, constant.LeadKindOrder, lead.Kind)
	assert.Equal(t, "Toyota", lead.Brand)
	assert.Equal(t, "Camry", lead.Model)
	assert.Equal(t, "Hybrid", lead.BodyType)
	assert.Equal(t, []string{"Winter pack"}, lead.Options)
	assert.Equal(t, int64(32400), lead.Price)

	// Session is gone after submission.
	assert.Equal(t, store.StateIdle, h.state())

	// Free text never reached the oracle on this walk.
	assert.Equal(t, 0, h.extractor.calls)
}

func TestModelAskConfirmFlow(t *testing.T) {
	h := newHarness(t, nil)

	h.send(t, "/start")
	h.send(t, "1")
	h.send(t, "Toyota")

	reply := h.send(t, "Cemri")
	assert.Equal(t, fmt.Sprintf(constant.ReplyAskConfirm, "Camry"), reply)

	// A non-answer re-prompts and keeps the candidate parked.
	reply = h.send(t, "hello there")
	assert.Equal(t, fmt.Sprintf(constant.ReplyAskRepeat, "Camry"), reply)

	reply = h.send(t, "1")
	assert.Contains(t, reply, constant.ReplyBodyTypeHeader)
	assert.Equal(t, store.StateSelectingOptions, h.state())
	sess := h.sessions.Get(h.sid)
	assert.Equal(t, "Camry", sess.StringSlot(constant.SlotModel))
}

func TestAskRejectedReturnsToMenu(t *testing.T) {
	h := newHarness(t, nil)

	h.send(t, "/start")
	h.send(t, "1")
	h.send(t, "Toyota")
	h.send(t, "Cemri")

	reply := h.send(t, "2")
	assert.Contains(t, reply, constant.ReplyModelHeader)
	assert.Equal(t, store.StateAwaitingModel, h.state())
	sess := h.sessions.Get(h.sid)
	assert.Empty(t, sess.StringSlot(constant.SlotModel))
	_, pending := sess.Slots[constant.SlotPendingAsk]
	assert.False(t, pending)
}

func TestJumpModelAskRejectedRendersModelMenu(t *testing.T) {
	h := newHarness(t, map[string]oracle.Entities{
		"looking for a tayota cemri": {Brand: "Toyota", Model: "Cemri"},
	})

	h.send(t, "/start")
	h.send(t, "1")

	// The brand applies outright, the model lands in the ask band.
	reply := h.send(t, "looking for a tayota cemri")
	assert.Equal(t, fmt.Sprintf(constant.ReplyAskConfirm, "Camry"), reply)
	assert.Equal(t, store.StateAwaitingModel, h.state())

	// Rejection must offer Toyota's models, not the brand list the session
	// was paginating a step earlier.
	reply = h.send(t, "2")
	assert.Contains(t, reply, constant.ReplyModelHeader)
	assert.Contains(t, reply, "Corolla")
	assert.NotContains(t, reply, "Audi")
	assert.Equal(t, store.StateAwaitingModel, h.state())

	// Menu digits now select models.
	reply = h.send(t, "2")
	assert.Contains(t, reply, constant.ReplyOptionsHeader)
	sess := h.sessions.Get(h.sid)
	assert.Equal(t, "Corolla", sess.StringSlot(constant.SlotModel))
}

func TestDeferredModelAskRejectedRendersModelMenu(t *testing.T) {
	h := newHarness(t, map[string]oracle.Entities{
		"a tayo cemri please": {Brand: "Tayo", Model: "Cemri"},
	})

	h.send(t, "/start")
	h.send(t, "1")

	// Brand in the ask band with the raw model deferred.
	reply := h.send(t, "a tayo cemri please")
	assert.Equal(t, fmt.Sprintf(constant.ReplyAskConfirm, "Toyota"), reply)

	// Confirming the brand immediately resolves the deferred model into a
	// second ask.
	reply = h.send(t, "1")
	assert.Equal(t, fmt.Sprintf(constant.ReplyAskConfirm, "Camry"), reply)
	assert.Equal(t, store.StateAwaitingModel, h.state())

	reply = h.send(t, "2")
	assert.Contains(t, reply, constant.ReplyModelHeader)
	assert.Contains(t, reply, "Land Cruiser")
	assert.NotContains(t, reply, "Audi")
	assert.Equal(t, store.StateAwaitingModel, h.state())
	assert.Equal(t, 1, h.extractor.calls)
}

func TestJumpFromBrandState(t *testing.T) {
	h := newHarness(t, map[string]oracle.Entities{
		"i want a tayota camry": {Brand: "Toyota", Model: "Camry"},
	})

	h.send(t, "/start")
	h.send(t, "1")

	reply := h.send(t, "i want a tayota camry")
	assert.Contains(t, reply, constant.ReplyBodyTypeHeader)
	assert.Equal(t, store.StateSelectingOptions, h.state())

	sess := h.sessions.Get(h.sid)
	assert.Equal(t, "Toyota", sess.StringSlot(constant.SlotBrand))
	assert.Equal(t, "Camry", sess.StringSlot(constant.SlotModel))
	assert.Equal(t, 1, h.extractor.calls)
}

func TestUnavailableModelRedirectsToManager(t *testing.T) {
	h := newHarness(t, nil)

	h.send(t, "/start")
	h.send(t, "1")
	h.send(t, "Toyota")

	reply := h.send(t, "3") // Land Cruiser
	assert.Contains(t, reply, "not in stock")
	assert.Equal(t, store.StateContactManager, h.state())

	reply = h.send(t, "call me at 555-0101")
	assert.Contains(t, reply, constant.ReplyManagerThanks)
	assert.Equal(t, store.StateMainMenu, h.state())

	require.Len(t, h.leads.leads, 1)
	lead := h.leads.leads[0]
	assert.Equal(t, constant.LeadKindManagerRequest, lead.Kind)
	assert.Equal(t, "call me at 555-0101", lead.Contact)
	assert.Equal(t, "Toyota", lead.Brand)
}

func TestDigitBeatsFuzzyAndOutOfRange(t *testing.T) {
	h := newHarness(t, nil)

	h.send(t, "/start")
	h.send(t, "1")

	// "2" is a valid selection (Audi), never fuzzy-matched as text.
	reply := h.send(t, "2")
	assert.Contains(t, reply, "A4")
	assert.Equal(t, store.StateAwaitingModel, h.state())

	// "9" is numeric but not on the one-item menu: miss, not free text.
	reply = h.send(t, "9")
	assert.Contains(t, reply, constant.ReplyMenuOutOfRange)
	assert.Equal(t, store.StateAwaitingModel, h.state())
	assert.Equal(t, 0, h.extractor.calls)
}

func TestResetCommand(t *testing.T) {
	h := newHarness(t, nil)

	h.send(t, "/start")
	h.send(t, "1")
	assert.Equal(t, store.StateAwaitingBrand, h.state())

	reply := h.send(t, "/reset")
	assert.Equal(t, constant.ReplySessionReset, reply)
	assert.Equal(t, store.StateIdle, h.state())

	// Any message wakes the idle session back into the main menu.
	reply = h.send(t, "hi")
	assert.Contains(t, reply, constant.ReplyMainMenuHeader)
	assert.Equal(t, store.StateMainMenu, h.state())
}

func TestDeclineOrder(t *testing.T) {
	h := newHarness(t, nil)

	h.send(t, "/start")
	h.send(t, "1")
	h.send(t, "Toyota")
	h.send(t, "Camry")
	h.send(t, "1") // Sedan
	h.send(t, "2") // No extras

	reply := h.send(t, "2")
	assert.Contains(t, reply, constant.ReplyOrderDeclined)
	assert.Contains(t, reply, constant.ReplyMainMenuHeader)
	assert.Empty(t, h.leads.leads)
	assert.Equal(t, store.StateMainMenu, h.state())
}
