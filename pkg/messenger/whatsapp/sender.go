package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-showroom-be/pkg/messenger"
)

const graphBase = "https://graph.facebook.com/v19.0"

// Sender delivers replies through the WhatsApp Cloud API.
type Sender struct {
	token   string
	phoneId string
	client  *http.Client
}

var _ messenger.Sender = &Sender{}

func NewSender(accessToken, phoneNumberId string) *Sender {
	return &Sender{
		token:   accessToken,
		phoneId: phoneNumberId,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type textPayload struct {
	Body string `json:"body"`
}

type sendMessageRequest struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             textPayload `json:"text"`
}

func (s *Sender) Send(ctx context.Context, chatRef, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		MessagingProduct: "whatsapp",
		To:               chatRef,
		Type:             "text",
		Text:             textPayload{Body: text},
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", graphBase, s.phoneId)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp send failed (status %d): %s", resp.StatusCode, string(raw))
	}
	return nil
}
