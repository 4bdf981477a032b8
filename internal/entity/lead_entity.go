package entity

import (
	"time"

	"github.com/google/uuid"
)

// Lead is the output of a completed funnel: either a submitted order or a
// manager-contact request. Exported flips once the CRM pipeline has pushed
// the row to the tenant's spreadsheet.
type Lead struct {
	Id        uuid.UUID
	TenantId  uuid.UUID
	Kind      string // order | manager_request
	Channel   string // telegram | whatsapp
	UserRef   string
	Category  string
	Brand     string
	Model     string
	BodyType  string
	Options   []string
	Price     int64
	PriceNote string // "price unavailable" when the quote degraded
	Contact   string // free-text contact for manager requests
	Exported  bool
	CreatedAt time.Time
}
