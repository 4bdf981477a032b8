package oracle

import (
	"context"
	"fmt"
	"log"
	"time"

	"ai-showroom-be/pkg/llm"
)

// Role tells the oracle which entity the funnel is currently asking for.
type Role string

const (
	RoleBrand Role = "brand"
	RoleModel Role = "model"
)

// Context is the funnel-side context handed to the oracle with each call.
type Context struct {
	Role       Role
	Category   string
	KnownBrand string // set when Role is model and the brand is already committed
}

// Entities is the oracle's output. Empty string means "not extracted".
type Entities struct {
	Brand string
	Model string
}

func (e Entities) Empty() bool { return e.Brand == "" && e.Model == "" }

// EntityExtractor is consumed by the funnel service; the LLM-backed
// Extractor below is the production implementation.
type EntityExtractor interface {
	Extract(ctx context.Context, text string, ec Context) Entities
}

const DefaultTimeout = 25 * time.Second

// Extractor adapts an LLM provider into the entity-extraction contract.
// It is invoked at most once per ambiguous user turn, carries a hard
// timeout, and never propagates errors: timeout, transport failure and
// unparseable output all degrade to an empty extraction, for which the
// caller always has a not-found fallback path.
type Extractor struct {
	provider llm.LLMProvider
	timeout  time.Duration
	logger   *log.Logger
}

func NewExtractor(provider llm.LLMProvider, timeout time.Duration, logger *log.Logger) *Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Extractor{provider: provider, timeout: timeout, logger: logger}
}

var _ EntityExtractor = &Extractor{}

func (e *Extractor) Extract(ctx context.Context, text string, ec Context) Entities {
	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.provider.Generate(callCtx, buildPrompt(text, ec), llm.WithTemperature(0), llm.WithMaxTokens(120))
	if err != nil {
		// No retry inside a turn: the oracle is not idempotent and a second
		// call would double the latency budget.
		e.logger.Printf("[WARN] entity extraction failed, degrading to empty: %v", err)
		return Entities{}
	}

	return ParseEntities(raw)
}

func buildPrompt(text string, ec Context) string {
	prompt := `You extract vehicle catalog entities from a customer message.
The message may be in any language or script and may contain typos.
Answer with ONLY a JSON object of the form {"brand": "...", "model": "..."}.
Use null for an entity that is not mentioned. Use canonical latin spelling.

`
	if ec.Category != "" {
		prompt += fmt.Sprintf("Vehicle category: %s\n", ec.Category)
	}
	switch ec.Role {
	case RoleModel:
		if ec.KnownBrand != "" {
			prompt += fmt.Sprintf("The customer already chose the brand %s; they are naming a model.\n", ec.KnownBrand)
		} else {
			prompt += "The customer is naming a vehicle model.\n"
		}
	default:
		prompt += "The customer is naming a vehicle brand, possibly together with a model.\n"
	}
	prompt += fmt.Sprintf("\nCustomer message: %q\n", text)
	return prompt
}
