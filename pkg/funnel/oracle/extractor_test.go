package oracle

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"ai-showroom-be/pkg/llm"
)

type scriptedLLM struct {
	reply string
	err   error
	delay time.Duration
	calls int
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.Generate(ctx, "", options...)
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.calls++
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.reply, s.err
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestExtractParsesProviderOutput(t *testing.T) {
	provider := &scriptedLLM{reply: `{"brand": "Audi", "model": "Quattro"}`}
	e := NewExtractor(provider, time.Second, quietLogger())

	got := e.Extract(context.Background(), "Ауди кватро", Context{Role: RoleBrand, Category: "Cars"})
	if got.Brand != "Audi" || got.Model != "Quattro" {
		t.Errorf("Extract = %+v, want Audi/Quattro", got)
	}
}

func TestExtractDegradesOnTransportError(t *testing.T) {
	provider := &scriptedLLM{err: errors.New("connection refused")}
	e := NewExtractor(provider, time.Second, quietLogger())

	got := e.Extract(context.Background(), "audi", Context{Role: RoleBrand})
	if !got.Empty() {
		t.Errorf("Extract after transport error = %+v, want empty", got)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want exactly 1 (no retry within a turn)", provider.calls)
	}
}

func TestExtractDegradesOnTimeout(t *testing.T) {
	provider := &scriptedLLM{reply: `{"brand": "Audi"}`, delay: 200 * time.Millisecond}
	e := NewExtractor(provider, 20*time.Millisecond, quietLogger())

	start := time.Now()
	got := e.Extract(context.Background(), "audi", Context{Role: RoleBrand})
	if !got.Empty() {
		t.Errorf("Extract after timeout = %+v, want empty", got)
	}
	if time.Since(start) > 150*time.Millisecond {
		t.Error("Extract did not honor the hard timeout")
	}
}
