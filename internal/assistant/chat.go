// Package assistant is the AI chat helper: a transcript kept in memory and an
// opaque text-completion backend.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/and161185/servicelog/internal/errs"
)

// Completer turns a prompt into a reply.
type Completer interface {
	Complete(ctx context.Context, prompt, system string) (string, error)
}

// Role of a transcript message.
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

const (
	SystemInstruction = "Jesteś ekspertem serwisu technicznego. Pomagasz serwisantom diagnozować usterki kotłów, klimatyzacji i sprzętu AGD. Odpowiadaj konkretnie, punktowo i technicznie w języku polskim."
	EmptyReply        = "Przepraszam, nie mogłem przetworzyć tego zapytania."
	FailureReply      = "Błąd połączenia z mózgiem AI. Sprawdź konfigurację klucza."
)

// Message is one transcript entry.
type Message struct {
	Role Role
	Text string
}

// Chat is a single conversation. One request is sent per question; earlier
// messages are not replayed to the backend.
type Chat struct {
	mu         sync.Mutex
	completer  Completer
	log        *zap.Logger
	transcript []Message
}

func NewChat(c Completer, log *zap.Logger) *Chat {
	return &Chat{completer: c, log: log}
}

// Ask appends the question and the reply. A blank prompt does nothing.
// On failure the fallback reply is appended and the cause returned.
func (c *Chat) Ask(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", nil
	}
	c.append(Message{Role: RoleUser, Text: prompt})

	reply, err := c.completer.Complete(ctx, prompt, SystemInstruction)
	if err != nil {
		c.log.Warn("assistant call failed", zap.Error(err))
		c.append(Message{Role: RoleAI, Text: FailureReply})
		return FailureReply, fmt.Errorf("%w: %v", errs.ErrExternalService, err)
	}
	if reply == "" {
		reply = EmptyReply
	}
	c.append(Message{Role: RoleAI, Text: reply})
	return reply, nil
}

// Transcript returns a copy of the conversation.
func (c *Chat) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.transcript...)
}

func (c *Chat) append(m Message) {
	c.mu.Lock()
	c.transcript = append(c.transcript, m)
	c.mu.Unlock()
}
