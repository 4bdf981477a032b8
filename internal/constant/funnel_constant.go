package constant

// Channels
const (
	ChannelTelegram = "telegram"
	ChannelWhatsApp = "whatsapp"
)

// Reserved menu tokens. "00"/"99" are pagination, "0" always returns to the
// main menu. Digit input is checked against the current menu BEFORE any
// fuzzy or AI processing.
const (
	TokenPrevPage = "00"
	TokenNextPage = "99"
	TokenMainMenu = "0"
)

// Chat commands handled in any state.
const (
	CommandStart = "/start"
	CommandMenu  = "/menu"
	CommandReset = "/reset"
)

// COMMAND menu action values.
const (
	CmdMainMenu   = "MAIN_MENU"
	CmdConfirmYes = "CONFIRM_YES"
	CmdConfirmNo  = "CONFIRM_NO"
)

// Session slot keys.
const (
	SlotCategory   = "category"
	SlotBrand      = "brand"
	SlotModel      = "model"
	SlotBodyType   = "body_type"
	SlotOptions    = "options"
	SlotStage      = "stage"      // sub-step inside SELECTING_OPTIONS
	SlotPageItems  = "page_items" // list pinned for stable pagination
	SlotPage       = "page"
	SlotPendingAsk = "pending_ask" // *confirm.Pending
	SlotQuoteTotal = "quote_total"
)

// Stages inside SELECTING_OPTIONS.
const (
	StageBodyType = "BODY_TYPE"
	StageOptions  = "OPTIONS"
)

// Confirmation roles: what a pending "did you mean X?" answer applies to.
const (
	RoleCategory = "category"
	RoleBrand    = "brand"
	RoleModel    = "model"
)

// Synthetic catalog entries rendered into menus alongside real values.
const (
	ManagerEntryLabel = "Talk to a manager"
	NoExtrasLabel     = "No extras"
)

// Lead kinds.
const (
	LeadKindOrder          = "order"
	LeadKindManagerRequest = "manager_request"
)

// User-facing reply templates. Menus and summaries are assembled around
// these by the funnel service; no external rendering engine is involved.
const (
	ReplyMainMenuHeader  = "What are you looking for today? Reply with a number:"
	ReplyBrandHeader     = "Pick a brand (reply with a number, or just type the name):"
	ReplyModelHeader     = "Pick a model (reply with a number, or just type the name):"
	ReplyBodyTypeHeader  = "Choose a body type:"
	ReplyOptionsHeader   = "Choose an option pack:"
	ReplyPageFooter      = "00 - previous page | 99 - next page"
	ReplyMainMenuFooter  = "0 - main menu"
	ReplyAskConfirm      = "Did you mean %s? 1 - yes, 2 - no"
	ReplyAskRepeat       = "Please answer 1 (yes) or 2 (no). Did you mean %s?"
	ReplyBrandNotFound   = "I couldn't find that brand. Try the list below or type the name again."
	ReplyModelNotFound   = "I couldn't find that model. Try the list below or type the name again."
	ReplyNoModels        = "We don't list models for %s right now, but we can source one for you. Describe what you need and leave a contact - a manager will get back to you."
	ReplyNotAvailable    = "%s %s is not in stock right now, but we can order it for you. Describe what you need and leave a contact - a manager will get back to you."
	ReplyManagerPrompt   = "Describe what you need and leave a contact (phone or email). A manager will get back to you shortly."
	ReplyManagerThanks   = "Thanks! A manager will contact you soon."
	ReplyOrderSubmitted  = "Your order is in! A manager will contact you to finalize the details. Thank you!"
	ReplyOrderDeclined   = "No problem, the order was not submitted."
	ReplyPriceNA         = "price unavailable"
	ReplySessionReset    = "Session reset. Send any message to start over."
	ReplyTryAgainLater   = "Something went wrong on our side. Please try again later or contact support."
	ReplyUnknownSelect   = "I didn't catch that. Reply with one of the numbers below."
	ReplyConfirmHeader   = "Please confirm your order:"
	ReplyConfirmFooter   = "1 - submit order | 2 - decline"
	ReplyMenuOutOfRange  = "That number is not on the menu. Try again:"
)
