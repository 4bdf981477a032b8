package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

const (
	baseURL = "http://localhost:3000/api/webhook/telegram/demo-motors"
	secret  = "demo-telegram-secret"
	userId  = 424242
)

// Simplified DTOs for the script
type telegramUpdate struct {
	UpdateId int64 `json:"update_id"`
	Message  struct {
		MessageId int64 `json:"message_id"`
		From      struct {
			Id int64 `json:"id"`
		} `json:"from"`
		Chat struct {
			Id int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
}

type webhookAck struct {
	Handled bool   `json:"handled"`
	Reply   string `json:"reply"`
}

// Interactive console driver: types into the funnel as a fake Telegram user
// and prints the bot's replies. Run the rest server and the seeder first.
func main() {
	bot := color.New(color.FgCyan)
	you := color.New(color.FgGreen, color.Bold)
	errc := color.New(color.FgRed)

	fmt.Println("=== Showroom Funnel Simulation ===")
	fmt.Println("Type messages as the customer. /start begins, Ctrl+D exits.")

	scanner := bufio.NewScanner(os.Stdin)
	updateId := int64(1)

	for {
		you.Print("you> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		start := time.Now()
		reply, err := sendUpdate(updateId, text)
		elapsed := time.Since(start)
		updateId++

		if err != nil {
			errc.Printf("error: %v\n", err)
			continue
		}
		bot.Printf("bot (%v):\n%s\n", elapsed.Round(time.Millisecond), reply)
	}
}

func sendUpdate(updateId int64, text string) (string, error) {
	var update telegramUpdate
	update.UpdateId = updateId
	update.Message.MessageId = updateId
	update.Message.From.Id = userId
	update.Message.Chat.Id = userId
	update.Message.Text = text

	payload, _ := json.Marshal(update)

	req, err := http.NewRequest("POST", baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Telegram-Bot-Api-Secret-Token", secret)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
	}

	var ack webhookAck
	if err := json.Unmarshal(raw, &ack); err != nil {
		return "", err
	}
	if !ack.Handled {
		return "(ignored)", nil
	}
	return ack.Reply, nil
}
