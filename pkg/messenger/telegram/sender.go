package telegram

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

const apiBase = "https://api.telegram.org"

// Sender delivers replies through the Telegram Bot API.
type Sender struct {
	token  string
	client *http.Client
}

var _ messenger.Sender = &Sender{}

func NewSender(botToken string) *Sender {
	return &Sender{
		token:  botToken,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendMessageRequest struct {
	ChatId string `json:"chat_id"`
	Text   string `json:"text"`
}

type apiResponse struct {
	Ok          bool   `json:"ok"`
	Description string `json:"description"`
}

func (s *Sender) Send(ctx context.Context, chatRef, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatId: chatRef, Text: text})
	if err != nil {
		return fmt.Errorf("marshal sendMessage: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", apiBase, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil || !parsed.Ok {
		return fmt.Errorf("telegram sendMessage failed (status %d): %s", resp.StatusCode, string(raw))
	}
	return nil
}
