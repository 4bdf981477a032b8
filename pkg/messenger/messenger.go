package messenger

import "context"

// Sender pushes a reply back to the user on whatever channel the message
// came from. chatRef is the channel-native chat identifier (telegram chat id,
// whatsapp phone number).
type Sender interface {
	Send(ctx context.Context, chatRef, text string) error
}
