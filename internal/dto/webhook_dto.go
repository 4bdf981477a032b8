package dto

// Telegram webhook payload (the subset the funnel consumes).

type TelegramUpdate struct {
	UpdateId int64            `json:"update_id"`
	Message  *TelegramMessage `json:"message"`
}

type TelegramMessage struct {
	MessageId int64        `json:"message_id"`
	From      TelegramUser `json:"from"`
	Chat      TelegramChat `json:"chat"`
	Text      string       `json:"text"`
}

type TelegramUser struct {
	Id       int64  `json:"id"`
	Username string `json:"username"`
}

type TelegramChat struct {
	Id int64 `json:"id"`
}

// WhatsApp Cloud API webhook payload.

type WhatsAppWebhook struct {
	Object string          `json:"object"`
	Entry  []WhatsAppEntry `json:"entry"`
}

type WhatsAppEntry struct {
	Id      string           `json:"id"`
	Changes []WhatsAppChange `json:"changes"`
}

type WhatsAppChange struct {
	Field string        `json:"field"`
	Value WhatsAppValue `json:"value"`
}

type WhatsAppValue struct {
	MessagingProduct string            `json:"messaging_product"`
	Messages         []WhatsAppMessage `json:"messages"`
}

type WhatsAppMessage struct {
	From string           `json:"from"`
	Id   string           `json:"id"`
	Type string           `json:"type"`
	Text WhatsAppTextBody `json:"text"`
}

type WhatsAppTextBody struct {
	Body string `json:"body"`
}

// WebhookAck is returned to the channel platform; Reply mirrors what was
// sent to the user so the simulation driver can read it.
type WebhookAck struct {
	Handled bool   `json:"handled"`
	Reply   string `json:"reply,omitempty"`
}
