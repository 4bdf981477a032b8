package dto

// ResetSessionRequest clears one user's funnel state.
type ResetSessionRequest struct {
	TenantSlug string `json:"tenant_slug" validate:"required"`
	Channel    string `json:"channel" validate:"required,oneof=telegram whatsapp"`
	UserRef    string `json:"user_ref" validate:"required"`
}

// LeadListQuery filters the lead listing.
type LeadListQuery struct {
	TenantSlug string `query:"tenant_slug"`
	Kind       string `query:"kind"`
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
}

type LeadResponse struct {
	Id        string   `json:"id"`
	Kind      string   `json:"kind"`
	Channel   string   `json:"channel"`
	UserRef   string   `json:"user_ref"`
	Category  string   `json:"category"`
	Brand     string   `json:"brand"`
	Model     string   `json:"model"`
	BodyType  string   `json:"body_type"`
	Options   []string `json:"options"`
	Price     int64    `json:"price"`
	PriceNote string   `json:"price_note,omitempty"`
	Contact   string   `json:"contact,omitempty"`
	Exported  bool     `json:"exported"`
	CreatedAt string   `json:"created_at"`
}

type StatsResponse struct {
	ActiveSessions int   `json:"active_sessions"`
	TotalLeads     int64 `json:"total_leads"`
	OrderLeads     int64 `json:"order_leads"`
	ManagerLeads   int64 `json:"manager_leads"`
}

type SweepResponse struct {
	Removed int `json:"removed"`
}
