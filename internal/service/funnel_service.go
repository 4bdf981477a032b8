package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-showroom-be/internal/constant"
	"ai-showroom-be/internal/entity"
	"ai-showroom-be/internal/pkg/logger"
	"ai-showroom-be/internal/repository/memory"
	"ai-showroom-be/internal/repository/unitofwork"
	"ai-showroom-be/internal/websocket"
	"ai-showroom-be/pkg/catalog"
	"ai-showroom-be/pkg/funnel/classify"
	"ai-showroom-be/pkg/funnel/confirm"
	"ai-showroom-be/pkg/funnel/fuzzy"
	"ai-showroom-be/pkg/funnel/jump"
	"ai-showroom-be/pkg/funnel/oracle"
	"ai-showroom-be/pkg/funnel/paginate"
	"ai-showroom-be/pkg/pricing"
	"ai-showroom-be/pkg/store"
)

var (
	ErrTenantNotFound   = errors.New("tenant not found")
	ErrTenantInactive   = errors.New("tenant is inactive")
	ErrWebhookForbidden = errors.New("webhook secret mismatch")
)

type IFunnelService interface {
	// HandleMessage runs one funnel turn and returns the reply text.
	HandleMessage(ctx context.Context, tenantSlug, channel, userRef, text string) (string, error)

	// ResetSession drops one user's funnel state.
	ResetSession(tenantSlug, channel, userRef string)

	// AuthorizeTelegram validates the per-tenant webhook secret header.
	AuthorizeTelegram(ctx context.Context, tenantSlug, secretToken string) (*entity.Tenant, error)

	// AuthorizeWhatsApp validates the hub.verify_token challenge value.
	AuthorizeWhatsApp(ctx context.Context, tenantSlug, verifyToken string) (*entity.Tenant, error)

	// Tenant resolves an active tenant by slug without any secret check.
	Tenant(ctx context.Context, tenantSlug string) (*entity.Tenant, error)
}

// FunnelOptions carries the tuning knobs; zero values fall back to the
// package defaults.
type FunnelOptions struct {
	PageSize       int
	ApplyThreshold float64
	AskThreshold   float64
}

type funnelService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   *memory.SessionStore
	catalog    catalog.Provider
	extractor  oracle.EntityExtractor
	pricing    pricing.Service
	leads      ILeadService
	hub        *websocket.Hub // nil when dashboards are disabled
	logger     logger.ILogger

	pageSize       int
	applyThreshold float64
	askThreshold   float64
}

func NewFunnelService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.SessionStore,
	catalogProvider catalog.Provider,
	extractor oracle.EntityExtractor,
	pricingService pricing.Service,
	leads ILeadService,
	hub *websocket.Hub,
	log logger.ILogger,
	opts FunnelOptions,
) IFunnelService {
	if opts.PageSize < 1 {
		opts.PageSize = paginate.DefaultPageSize
	}
	if opts.ApplyThreshold <= 0 {
		opts.ApplyThreshold = fuzzy.DefaultApplyThreshold
	}
	if opts.AskThreshold <= 0 {
		opts.AskThreshold = fuzzy.DefaultAskThreshold
	}
	return &funnelService{
		uowFactory:     uowFactory,
		sessions:       sessions,
		catalog:        catalogProvider,
		extractor:      extractor,
		pricing:        pricingService,
		leads:          leads,
		hub:            hub,
		logger:         log,
		pageSize:       opts.PageSize,
		applyThreshold: opts.ApplyThreshold,
		askThreshold:   opts.AskThreshold,
	}
}

func sessionId(tenantSlug, channel, userRef string) string {
	return tenantSlug + ":" + channel + ":" + userRef
}

func (s *funnelService) HandleMessage(ctx context.Context, tenantSlug, channel, userRef, text string) (string, error) {
	tenant, err := s.lookupTenant(ctx, tenantSlug)
	if err != nil {
		return "", err
	}

	sid := sessionId(tenantSlug, channel, userRef)

	// One turn at a time per user; concurrent messages from different users
	// proceed in parallel.
	unlock := s.sessions.Lock(sid)
	defer unlock()

	reply := s.handleTurn(ctx, tenant, channel, userRef, sid, text)

	if s.hub != nil {
		s.hub.Publish(websocket.Activity{
			Tenant:    tenantSlug,
			Kind:      "turn",
			Channel:   channel,
			UserRef:   userRef,
			Details:   map[string]interface{}{"state": s.sessions.Get(sid).State},
			Timestamp: time.Now(),
		})
	}

	return reply, nil
}

func (s *funnelService) ResetSession(tenantSlug, channel, userRef string) {
	sid := sessionId(tenantSlug, channel, userRef)
	unlock := s.sessions.Lock(sid)
	defer unlock()
	s.sessions.Clear(sid)
}

func (s *funnelService) AuthorizeTelegram(ctx context.Context, tenantSlug, secretToken string) (*entity.Tenant, error) {
	tenant, err := s.lookupTenant(ctx, tenantSlug)
	if err != nil {
		return nil, err
	}
	if tenant.TelegramSecret != "" && !secretEqual(tenant.TelegramSecret, secretToken) {
		return nil, ErrWebhookForbidden
	}
	return tenant, nil
}

func (s *funnelService) AuthorizeWhatsApp(ctx context.Context, tenantSlug, verifyToken string) (*entity.Tenant, error) {
	tenant, err := s.lookupTenant(ctx, tenantSlug)
	if err != nil {
		return nil, err
	}
	if tenant.WhatsAppSecret != "" && !secretEqual(tenant.WhatsAppSecret, verifyToken) {
		return nil, ErrWebhookForbidden
	}
	return tenant, nil
}

func (s *funnelService) Tenant(ctx context.Context, tenantSlug string) (*entity.Tenant, error) {
	return s.lookupTenant(ctx, tenantSlug)
}

func (s *funnelService) lookupTenant(ctx context.Context, slug string) (*entity.Tenant, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tenant, err := uow.TenantRepository().FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("lookup tenant %q: %w", slug, err)
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}
	if !tenant.Active {
		return nil, ErrTenantInactive
	}
	return tenant, nil
}

// handleTurn is the per-turn state machine. Any catalog/config failure
// degrades to a polite retry message and resets the session, so a broken
// tenant setup never strands a user mid-funnel.
func (s *funnelService) handleTurn(ctx context.Context, tenant *entity.Tenant, channel, userRef, sid, text string) string {
	trimmed := strings.TrimSpace(text)

	// Chat commands work in every state and bypass menus entirely.
	switch strings.ToLower(trimmed) {
	case constant.CommandStart, constant.CommandMenu:
		return s.renderMainMenu(ctx, tenant, sid)
	case constant.CommandReset:
		s.sessions.Clear(sid)
		return constant.ReplySessionReset
	}

	sess := s.sessions.Get(sid)

	// Any message wakes an idle session into the main menu.
	if sess.State == store.StateIdle {
		return s.renderMainMenu(ctx, tenant, sid)
	}

	// A pending "did you mean X?" intercepts the turn before classification.
	if pending, ok := sess.Slots[constant.SlotPendingAsk].(*confirm.Pending); ok {
		return s.handlePendingAsk(ctx, tenant, sid, pending, trimmed)
	}

	input := classify.Classify(trimmed, sess.Menu)
	if input.Kind == classify.KindDigit {
		return s.handleDigit(ctx, tenant, channel, userRef, sid, input)
	}

	// A number that is not on the current menu is a miss, not free text.
	if isDigits(trimmed) && len(sess.Menu) > 0 {
		return constant.ReplyMenuOutOfRange + "\n\n" + s.renderCurrentMenu(ctx, tenant, sid)
	}

	return s.handleFreeText(ctx, tenant, channel, userRef, sid, trimmed)
}

// --- digit dispatch ---

func (s *funnelService) handleDigit(ctx context.Context, tenant *entity.Tenant, channel, userRef, sid string, input classify.Input) string {
	sess := s.sessions.Get(sid)

	switch input.Action.Kind {
	case store.ActionPage:
		s.sessions.MergeSlots(sid, map[string]interface{}{constant.SlotPage: input.Action.Page})
		return s.renderCurrentMenu(ctx, tenant, sid)

	case store.ActionCommand:
		switch input.Action.Value {
		case constant.CmdMainMenu:
			return s.renderMainMenu(ctx, tenant, sid)
		case constant.CmdConfirmYes:
			return s.submitOrder(ctx, tenant, channel, userRef, sid)
		case constant.CmdConfirmNo:
			return constant.ReplyOrderDeclined + "\n\n" + s.renderMainMenu(ctx, tenant, sid)
		}

	case store.ActionSelect:
		return s.commitSelection(ctx, tenant, sid, sess.State, input.Action.Value)
	}

	return constant.ReplyUnknownSelect + "\n\n" + s.renderCurrentMenu(ctx, tenant, sid)
}

// commitSelection advances the funnel after a value was picked, whether by
// digit, by auto-applied fuzzy match, or by a confirmed ask.
func (s *funnelService) commitSelection(ctx context.Context, tenant *entity.Tenant, sid, state, value string) string {
	switch state {
	case store.StateMainMenu:
		if value == constant.ManagerEntryLabel {
			return s.enterContactManager(sid, constant.ReplyManagerPrompt)
		}
		s.sessions.MergeSlots(sid, map[string]interface{}{constant.SlotCategory: value})
		return s.renderBrandMenu(ctx, tenant, sid)

	case store.StateAwaitingBrand:
		s.sessions.MergeSlots(sid, map[string]interface{}{constant.SlotBrand: value})
		return s.renderModelMenu(ctx, tenant, sid)

	case store.StateAwaitingModel:
		return s.commitModel(ctx, tenant, sid, value)

	case store.StateSelectingOptions:
		sess := s.sessions.Get(sid)
		if sess.StringSlot(constant.SlotStage) == constant.StageBodyType {
			s.sessions.MergeSlots(sid, map[string]interface{}{constant.SlotBodyType: value})
			return s.renderOptionsMenu(ctx, tenant, sid)
		}
		options := []string{}
		if value != constant.NoExtrasLabel {
			options = []string{value}
		}
		s.sessions.MergeSlots(sid, map[string]interface{}{constant.SlotOptions: options})
		return s.renderConfirmation(ctx, tenant, sid)
	}

	return constant.ReplyUnknownSelect + "\n\n" + s.renderCurrentMenu(ctx, tenant, sid)
}

// commitModel verifies stock before accepting a model; an unavailable model
// redirects into the custom-order path instead of a dead end.
func (s *funnelService) commitModel(ctx context.Context, tenant *entity.Tenant, sid, model string) string {
	sess := s.sessions.Get(sid)
	brand := sess.StringSlot(constant.SlotBrand)

	available, err := s.catalog.FindAvailability(ctx, tenant.Id, brand, model)
	if err != nil {
		return s.failTurn(sid, "availability check failed", err)
	}
	if !available {
		prompt := fmt.Sprintf(constant.ReplyNotAvailable, brand, model)
		return s.enterContactManager(sid, prompt)
	}

	s.sessions.MergeSlots(sid, map[string]interface{}{constant.SlotModel: model})
	return s.renderBodyTypeMenu(ctx, tenant, sid)
}

// --- pending ask ---

func (s *funnelService) handlePendingAsk(ctx context.Context, tenant *entity.Tenant, sid string, pending *confirm.Pending, reply string) string {
	switch confirm.Resolve(reply) {
	case confirm.Confirmed:
		s.sessions.DeleteSlot(sid, constant.SlotPendingAsk)
		return s.applyConfirmed(ctx, tenant, sid, pending)

	case confirm.Rejected:
		s.sessions.DeleteSlot(sid, constant.SlotPendingAsk)
		return s.renderRoleMenu(ctx, tenant, sid, pending.Role)

	default:
		// Anything else leaves the candidate parked and re-prompts.
		return fmt.Sprintf(constant.ReplyAskRepeat, pending.Value)
	}
}

func (s *funnelService) applyConfirmed(ctx context.Context, tenant *entity.Tenant, sid string, pending *confirm.Pending) string {
	switch pending.Role {
	case constant.RoleCategory:
		s.sessions.MergeSlots(sid, map[string]interface{}{constant.SlotCategory: pending.Value})
		return s.renderBrandMenu(ctx, tenant, sid)

	case constant.RoleBrand:
		s.sessions.MergeSlots(sid, map[string]interface{}{constant.SlotBrand: pending.Value})
		if pending.DeferredModel != "" {
			// The user named a model in the same message; resolve it now that
			// the brand is settled, without another oracle call.
			return s.resolveModelText(ctx, tenant, sid, pending.DeferredModel, false)
		}
		return s.renderModelMenu(ctx, tenant, sid)

	case constant.RoleModel:
		return s.commitModel(ctx, tenant, sid, pending.Value)
	}

	return s.renderCurrentMenu(ctx, tenant, sid)
}

// renderRoleMenu rebuilds the menu the rejected candidate belongs to. The
// pinned list can lag a step behind when the ask arrived through a jump, so
// rejection never re-renders from pinned slots.
func (s *funnelService) renderRoleMenu(ctx context.Context, tenant *entity.Tenant, sid, role string) string {
	switch role {
	case constant.RoleBrand:
		return s.renderBrandMenu(ctx, tenant, sid)
	case constant.RoleModel:
		return s.renderModelMenu(ctx, tenant, sid)
	}
	return s.renderMainMenu(ctx, tenant, sid)
}

// --- free text ---

func (s *funnelService) handleFreeText(ctx context.Context, tenant *entity.Tenant, channel, userRef, sid, text string) string {
	sess := s.sessions.Get(sid)

	switch sess.State {
	case store.StateMainMenu:
		return s.freeTextMainMenu(ctx, tenant, sid, text)

	case store.StateAwaitingBrand:
		return s.freeTextBrand(ctx, tenant, sid, text)

	case store.StateAwaitingModel:
		return s.resolveModelText(ctx, tenant, sid, text, true)

	case store.StateContactManager:
		return s.fileManagerRequest(ctx, tenant, channel, userRef, sid, text)

	case store.StateConfirmingOrder:
		return s.renderConfirmation(ctx, tenant, sid)

	default:
		return constant.ReplyUnknownSelect + "\n\n" + s.renderCurrentMenu(ctx, tenant, sid)
	}
}

// freeTextMainMenu accepts only high-confidence matches against the category
// list. The main menu is short and the entries are dealership-defined words,
// so an ask round or an oracle call would be overkill here.
func (s *funnelService) freeTextMainMenu(ctx context.Context, tenant *entity.Tenant, sid, text string) string {
	categories, err := s.catalog.ListCategories(ctx, tenant.Id)
	if err != nil {
		return s.failTurn(sid, "list categories failed", err)
	}
	entries := append(append([]string{}, categories...), constant.ManagerEntryLabel)

	outcome := fuzzy.Match(text, entries, s.applyThreshold, s.askThreshold)
	if outcome.Applied() {
		return s.commitSelection(ctx, tenant, sid, store.StateMainMenu, outcome.Value)
	}
	return constant.ReplyUnknownSelect + "\n\n" + s.renderMainMenu(ctx, tenant, sid)
}

func (s *funnelService) freeTextBrand(ctx context.Context, tenant *entity.Tenant, sid, text string) string {
	brands, err := s.catalog.ListBrands(ctx, tenant.Id)
	if err != nil {
		return s.failTurn(sid, "list brands failed", err)
	}

	outcome := fuzzy.Match(text, brands, s.applyThreshold, s.askThreshold)
	switch {
	case outcome.Applied():
		return s.commitSelection(ctx, tenant, sid, store.StateAwaitingBrand, outcome.Value)
	case outcome.Asks():
		return s.parkAsk(sid, &confirm.Pending{Role: constant.RoleBrand, Value: outcome.Value, Score: outcome.Score})
	}

	// Fuzzy missed: one oracle shot, then fuzzy again over its output.
	sess := s.sessions.Get(sid)
	extracted := s.extractor.Extract(ctx, text, oracle.Context{
		Role:     oracle.RoleBrand,
		Category: sess.StringSlot(constant.SlotCategory),
	})

	if extracted.Empty() || extracted.Brand == "" {
		return constant.ReplyBrandNotFound + "\n\n" + s.renderBrandMenu(ctx, tenant, sid)
	}

	if extracted.Model != "" {
		return s.resolveJump(ctx, tenant, sid, extracted, brands)
	}

	second := fuzzy.Match(extracted.Brand, brands, s.applyThreshold, s.askThreshold)
	switch {
	case second.Applied():
		return s.commitSelection(ctx, tenant, sid, store.StateAwaitingBrand, second.Value)
	case second.Asks():
		return s.parkAsk(sid, &confirm.Pending{Role: constant.RoleBrand, Value: second.Value, Score: second.Score})
	}
	return constant.ReplyBrandNotFound + "\n\n" + s.renderBrandMenu(ctx, tenant, sid)
}

// resolveJump handles "Toyota Camry in one message": both entities resolve
// independently and the funnel lands as deep as confidence allows.
func (s *funnelService) resolveJump(ctx context.Context, tenant *entity.Tenant, sid string, extracted oracle.Entities, brands []string) string {
	outcome, err := jump.Resolve(ctx, extracted.Brand, extracted.Model, brands,
		func(ctx context.Context, brand string) ([]string, error) {
			return s.catalog.ListModels(ctx, tenant.Id, brand)
		},
		s.applyThreshold, s.askThreshold)
	if err != nil {
		return s.failTurn(sid, "jump resolution failed", err)
	}

	switch outcome.Kind {
	case jump.BrandNotFound:
		return constant.ReplyBrandNotFound + "\n\n" + s.renderBrandMenu(ctx, tenant, sid)

	case jump.BrandAsk:
		return s.parkAsk(sid, &confirm.Pending{
			Role:          constant.RoleBrand,
			Value:         outcome.Brand,
			Score:         outcome.BrandScore,
			DeferredModel: outcome.RawModel,
		})

	case jump.ModelMenu:
		s.sessions.MergeSlots(sid, map[string]interface{}{constant.SlotBrand: outcome.Brand})
		return s.renderModelMenu(ctx, tenant, sid)

	case jump.ModelAsk:
		s.sessions.MergeSlots(sid, map[string]interface{}{constant.SlotBrand: outcome.Brand})
		s.sessions.SetState(sid, store.StateAwaitingModel)
		return s.parkAsk(sid, &confirm.Pending{Role: constant.RoleModel, Value: outcome.Model, Score: outcome.ModelScore})

	default: // jump.Resolved
		s.sessions.MergeSlots(sid, map[string]interface{}{constant.SlotBrand: outcome.Brand})
		s.sessions.SetState(sid, store.StateAwaitingModel)
		return s.commitModel(ctx, tenant, sid, outcome.Model)
	}
}

// resolveModelText resolves free model text against the committed brand's
// catalog. allowOracle is false on the deferred path, which already consumed
// this turn's oracle budget.
func (s *funnelService) resolveModelText(ctx context.Context, tenant *entity.Tenant, sid, text string, allowOracle bool) string {
	sess := s.sessions.Get(sid)
	brand := sess.StringSlot(constant.SlotBrand)

	models, err := s.catalog.ListModels(ctx, tenant.Id, brand)
	if err != nil {
		return s.failTurn(sid, "list models failed", err)
	}

	outcome := fuzzy.Match(text, models, s.applyThreshold, s.askThreshold)
	switch {
	case outcome.Applied():
		return s.commitModel(ctx, tenant, sid, outcome.Value)
	case outcome.Asks():
		s.sessions.SetState(sid, store.StateAwaitingModel)
		return s.parkAsk(sid, &confirm.Pending{Role: constant.RoleModel, Value: outcome.Value, Score: outcome.Score})
	}

	if allowOracle {
		extracted := s.extractor.Extract(ctx, text, oracle.Context{
			Role:       oracle.RoleModel,
			Category:   sess.StringSlot(constant.SlotCategory),
			KnownBrand: brand,
		})
		if extracted.Model != "" {
			second := fuzzy.Match(extracted.Model, models, s.applyThreshold, s.askThreshold)
			switch {
			case second.Applied():
				return s.commitModel(ctx, tenant, sid, second.Value)
			case second.Asks():
				s.sessions.SetState(sid, store.StateAwaitingModel)
				return s.parkAsk(sid, &confirm.Pending{Role: constant.RoleModel, Value: second.Value, Score: second.Score})
			}
		}
	}

	return constant.ReplyModelNotFound + "\n\n" + s.renderModelMenu(ctx, tenant, sid)
}

func (s *funnelService) parkAsk(sid string, pending *confirm.Pending) string {
	s.sessions.MergeSlots(sid, map[string]interface{}{constant.SlotPendingAsk: pending})
	return fmt.Sprintf(constant.ReplyAskConfirm, pending.Value)
}

// --- leads ---

func (s *funnelService) fileManagerRequest(ctx context.Context, tenant *entity.Tenant, channel, userRef, sid, text string) string {
	sess := s.sessions.Get(sid)
	lead := &entity.Lead{
		Kind:     constant.LeadKindManagerRequest,
		Channel:  channel,
		UserRef:  userRef,
		Category: sess.StringSlot(constant.SlotCategory),
		Brand:    sess.StringSlot(constant.SlotBrand),
		Model:    sess.StringSlot(constant.SlotModel),
		Contact:  text,
	}
	if err := s.leads.Record(ctx, tenant, lead); err != nil {
		return s.failTurn(sid, "manager request persist failed", err)
	}
	return constant.ReplyManagerThanks + "\n\n" + s.renderMainMenu(ctx, tenant, sid)
}

func (s *funnelService) submitOrder(ctx context.Context, tenant *entity.Tenant, channel, userRef, sid string) string {
	sess := s.sessions.Get(sid)
	lead := &entity.Lead{
		Kind:     constant.LeadKindOrder,
		Channel:  channel,
		UserRef:  userRef,
		Category: sess.StringSlot(constant.SlotCategory),
		Brand:    sess.StringSlot(constant.SlotBrand),
		Model:    sess.StringSlot(constant.SlotModel),
		BodyType: sess.StringSlot(constant.SlotBodyType),
		Options:  sess.ListSlot(constant.SlotOptions),
	}
	if total, ok := sess.Slots[constant.SlotQuoteTotal].(int64); ok {
		lead.Price = total
	} else {
		lead.PriceNote = constant.ReplyPriceNA
	}

	if err := s.leads.Record(ctx, tenant, lead); err != nil {
		return s.failTurn(sid, "order persist failed", err)
	}
	s.sessions.Clear(sid)
	return constant.ReplyOrderSubmitted
}

// --- rendering ---

func (s *funnelService) renderMainMenu(ctx context.Context, tenant *entity.Tenant, sid string) string {
	categories, err := s.catalog.ListCategories(ctx, tenant.Id)
	if err != nil {
		return s.failTurn(sid, "list categories failed", err)
	}
	entries := append(append([]string{}, categories...), constant.ManagerEntryLabel)

	s.sessions.Clear(sid)
	s.sessions.SetState(sid, store.StateMainMenu)
	return s.renderList(sid, store.StateMainMenu, constant.ReplyMainMenuHeader, entries, 1)
}

func (s *funnelService) renderBrandMenu(ctx context.Context, tenant *entity.Tenant, sid string) string {
	brands, err := s.catalog.ListBrands(ctx, tenant.Id)
	if err != nil {
		return s.failTurn(sid, "list brands failed", err)
	}
	return s.renderList(sid, store.StateAwaitingBrand, constant.ReplyBrandHeader, brands, 1)
}

func (s *funnelService) renderModelMenu(ctx context.Context, tenant *entity.Tenant, sid string) string {
	sess := s.sessions.Get(sid)
	brand := sess.StringSlot(constant.SlotBrand)

	models, err := s.catalog.ListModels(ctx, tenant.Id, brand)
	if err != nil {
		return s.failTurn(sid, "list models failed", err)
	}
	if len(models) == 0 {
		// The dealership carries the brand but lists nothing under it; offer
		// sourcing instead of an empty menu.
		prompt := fmt.Sprintf(constant.ReplyNoModels, brand)
		return s.enterContactManager(sid, prompt)
	}
	return s.renderList(sid, store.StateAwaitingModel, constant.ReplyModelHeader, models, 1)
}

func (s *funnelService) renderBodyTypeMenu(ctx context.Context, tenant *entity.Tenant, sid string) string {
	sess := s.sessions.Get(sid)
	brand := sess.StringSlot(constant.SlotBrand)
	model := sess.StringSlot(constant.SlotModel)

	bodyTypes, err := s.catalog.ListBodyTypes(ctx, tenant.Id, brand, model)
	if err != nil {
		return s.failTurn(sid, "list body types failed", err)
	}
	if len(bodyTypes) <= 1 {
		// Single-body models skip straight to option packs.
		bodyType := ""
		if len(bodyTypes) == 1 {
			bodyType = bodyTypes[0]
		}
		s.sessions.MergeSlots(sid, map[string]interface{}{constant.SlotBodyType: bodyType})
		return s.renderOptionsMenu(ctx, tenant, sid)
	}

	s.sessions.MergeSlots(sid, map[string]interface{}{constant.SlotStage: constant.StageBodyType})
	return s.renderList(sid, store.StateSelectingOptions, constant.ReplyBodyTypeHeader, bodyTypes, 1)
}

func (s *funnelService) renderOptionsMenu(ctx context.Context, tenant *entity.Tenant, sid string) string {
	packs, err := s.catalog.ListOptionPacks(ctx, tenant.Id)
	if err != nil {
		return s.failTurn(sid, "list option packs failed", err)
	}
	if len(packs) == 0 {
		s.sessions.MergeSlots(sid, map[string]interface{}{constant.SlotOptions: []string{}})
		return s.renderConfirmation(ctx, tenant, sid)
	}

	entries := append(append([]string{}, packs...), constant.NoExtrasLabel)
	s.sessions.MergeSlots(sid, map[string]interface{}{constant.SlotStage: constant.StageOptions})
	return s.renderList(sid, store.StateSelectingOptions, constant.ReplyOptionsHeader, entries, 1)
}

// renderList pins the list into the session, stores the menu mapping and
// formats the page for the user. Every menu except the main one also binds
// "0" back to the main menu.
func (s *funnelService) renderList(sid, state, header string, list []string, pageNum int) string {
	page := paginate.Slice(list, pageNum, s.pageSize)
	menu := page.Menu()
	if state != store.StateMainMenu {
		menu[constant.TokenMainMenu] = store.MenuAction{Kind: store.ActionCommand, Value: constant.CmdMainMenu}
	}

	s.sessions.SetState(sid, state)
	s.sessions.MergeSlots(sid, map[string]interface{}{
		constant.SlotPageItems: list,
		constant.SlotPage:      page.Number,
	})
	s.sessions.SetMenu(sid, menu)

	var b strings.Builder
	b.WriteString(header)
	for i, item := range page.Items {
		b.WriteString(fmt.Sprintf("\n%d. %s", i+1, item))
	}
	if page.Total > 1 {
		b.WriteString(fmt.Sprintf("\n\nPage %d/%d\n%s", page.Number, page.Total, constant.ReplyPageFooter))
	}
	if state != store.StateMainMenu {
		b.WriteString("\n" + constant.ReplyMainMenuFooter)
	}
	return b.String()
}

// renderCurrentMenu re-renders whatever list the session is on, using the
// pinned items so pagination stays stable even if the catalog changed.
func (s *funnelService) renderCurrentMenu(ctx context.Context, tenant *entity.Tenant, sid string) string {
	sess := s.sessions.Get(sid)
	pinned := sess.ListSlot(constant.SlotPageItems)
	pageNum := sess.IntSlot(constant.SlotPage)
	if pageNum < 1 {
		pageNum = 1
	}

	switch sess.State {
	case store.StateMainMenu:
		if pinned == nil {
			return s.renderMainMenu(ctx, tenant, sid)
		}
		return s.renderList(sid, store.StateMainMenu, constant.ReplyMainMenuHeader, pinned, pageNum)
	case store.StateAwaitingBrand:
		if pinned == nil {
			return s.renderBrandMenu(ctx, tenant, sid)
		}
		return s.renderList(sid, store.StateAwaitingBrand, constant.ReplyBrandHeader, pinned, pageNum)
	case store.StateAwaitingModel:
		if pinned == nil {
			return s.renderModelMenu(ctx, tenant, sid)
		}
		return s.renderList(sid, store.StateAwaitingModel, constant.ReplyModelHeader, pinned, pageNum)
	case store.StateSelectingOptions:
		header := constant.ReplyOptionsHeader
		if sess.StringSlot(constant.SlotStage) == constant.StageBodyType {
			header = constant.ReplyBodyTypeHeader
		}
		return s.renderList(sid, store.StateSelectingOptions, header, pinned, pageNum)
	case store.StateConfirmingOrder:
		return s.renderConfirmation(ctx, tenant, sid)
	case store.StateContactManager:
		return constant.ReplyManagerPrompt
	}
	return s.renderMainMenu(ctx, tenant, sid)
}

// renderConfirmation prices the configured vehicle and shows the summary.
// A pricing failure degrades to "price unavailable" instead of blocking the
// order.
func (s *funnelService) renderConfirmation(ctx context.Context, tenant *entity.Tenant, sid string) string {
	sess := s.sessions.Get(sid)
	brand := sess.StringSlot(constant.SlotBrand)
	model := sess.StringSlot(constant.SlotModel)
	bodyType := sess.StringSlot(constant.SlotBodyType)
	options := sess.ListSlot(constant.SlotOptions)

	var b strings.Builder
	b.WriteString(constant.ReplyConfirmHeader)
	b.WriteString(fmt.Sprintf("\n%s %s", brand, model))
	if bodyType != "" {
		b.WriteString(" (" + bodyType + ")")
	}
	if len(options) > 0 {
		b.WriteString("\nOptions: " + strings.Join(options, ", "))
	}

	quote, err := s.pricing.Quote(ctx, tenant.Id, brand, model, bodyType, options)
	if err != nil {
		s.logger.Warn("Funnel", "Quote degraded", map[string]interface{}{
			"session": sid, "error": err.Error(),
		})
		s.sessions.DeleteSlot(sid, constant.SlotQuoteTotal)
		b.WriteString("\nTotal: " + constant.ReplyPriceNA)
	} else {
		for _, line := range quote.Lines {
			b.WriteString(fmt.Sprintf("\n  %s: %d", line.Label, line.Amount))
		}
		b.WriteString(fmt.Sprintf("\nTotal: %d", quote.Total))
		s.sessions.MergeSlots(sid, map[string]interface{}{constant.SlotQuoteTotal: quote.Total})
	}

	s.sessions.SetState(sid, store.StateConfirmingOrder)
	s.sessions.SetMenu(sid, map[string]store.MenuAction{
		"1":                    {Kind: store.ActionCommand, Value: constant.CmdConfirmYes},
		"2":                    {Kind: store.ActionCommand, Value: constant.CmdConfirmNo},
		constant.TokenMainMenu: {Kind: store.ActionCommand, Value: constant.CmdMainMenu},
	})

	b.WriteString("\n\n" + constant.ReplyConfirmFooter)
	b.WriteString("\n" + constant.ReplyMainMenuFooter)
	return b.String()
}

func (s *funnelService) enterContactManager(sid, prompt string) string {
	s.sessions.SetState(sid, store.StateContactManager)
	s.sessions.SetMenu(sid, nil)
	return prompt
}

// failTurn logs a configuration-class failure, resets the session and
// apologizes. The user can always start over; the broken setup is an
// operator problem.
func (s *funnelService) failTurn(sid, what string, err error) string {
	s.logger.Error("Funnel", what, map[string]interface{}{
		"session": sid,
		"error":   err.Error(),
	})
	s.sessions.Clear(sid)
	return constant.ReplyTryAgainLater
}

func secretEqual(want, got string) bool {
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
