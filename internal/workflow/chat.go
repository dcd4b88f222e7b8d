package workflow

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/straye-as/sales-intelligence/internal/domain"
	"go.uber.org/zap"
)

// FallbackAnswer is appended to the transcript when a chat request fails
const FallbackAnswer = "Sorry, I encountered an error processing your request. Please try again."

// SuggestedQuestions are offered on an empty transcript
var SuggestedQuestions = []string{
	"What is our total revenue this year?",
	"Show me the top 5 leads by AI score",
	"How many leads are in each status?",
	"Which campaigns have the highest ROI?",
	"What is our average deal size?",
	"List customers with lifetime value over $10,000",
}

type ChatAPI interface {
	Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error)
}

// Turn is one transcript entry
type Turn struct {
	Role     domain.ChatRole
	Content  string
	SQLQuery string
	Data     []map[string]any
	// Failed marks the fallback answer; Cause holds the error it replaced
	Failed bool
	Cause  error
}

// PreviewRows returns at most n rows and the total row count
func (t Turn) PreviewRows(n int) ([]map[string]any, int) {
	if n < 0 || n > len(t.Data) {
		n = len(t.Data)
	}
	return t.Data[:n], len(t.Data)
}

// Columns lists every column name appearing in the rows, sorted
func (t Turn) Columns() []string {
	seen := map[string]struct{}{}
	for _, row := range t.Data {
		for k := range row {
			seen[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// Chat is a multi-turn conversation. Failures never surface as an error
// state: they become a fallback assistant turn so the conversation can go on.
// The server-issued conversation id is threaded into every later request.
type Chat struct {
	mu             sync.Mutex
	seq            uint64
	loading        bool
	transcript     []Turn
	conversationID string

	api     ChatAPI
	timeout time.Duration
	logger  *zap.Logger
}

func NewChat(api ChatAPI, timeout time.Duration, logger *zap.Logger) *Chat {
	return &Chat{api: api, timeout: timeout, logger: logger}
}

// Send appends the user turn immediately, then the assistant's answer (or
// the fallback turn) once the request resolves. A response overtaken by a
// newer Send is dropped and ErrSuperseded is returned.
func (c *Chat) Send(ctx context.Context, message string) (Turn, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Turn{}, fmt.Errorf("%w: message is required", ErrValidation)
	}

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.loading = true
	c.transcript = append(c.transcript, Turn{Role: domain.ChatRoleUser, Content: message})
	req := domain.ChatRequest{Message: message}
	if c.conversationID != "" {
		id := c.conversationID
		req.ConversationID = &id
	}
	c.mu.Unlock()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.api.Chat(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.logger.Debug("discarding stale chat response", zap.Uint64("seq", seq), zap.Uint64("latest", c.seq))
		return Turn{}, ErrSuperseded
	}
	c.loading = false

	var turn Turn
	if err != nil {
		c.logger.Warn("chat request failed", zap.Error(err))
		turn = Turn{Role: domain.ChatRoleAssistant, Content: FallbackAnswer, Failed: true, Cause: err}
	} else {
		if resp.ConversationID != "" {
			c.conversationID = resp.ConversationID
		}
		turn = Turn{Role: domain.ChatRoleAssistant, Content: resp.Answer, Data: resp.Data}
		if resp.SQLQuery != nil {
			turn.SQLQuery = *resp.SQLQuery
		}
	}
	c.transcript = append(c.transcript, turn)
	return turn, nil
}

// Transcript returns a copy of the conversation so far
func (c *Chat) Transcript() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// ConversationID returns the server-issued id, empty before the first answer
func (c *Chat) ConversationID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conversationID
}

func (c *Chat) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Reset starts a new conversation. In-flight responses are discarded.
func (c *Chat) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.loading = false
	c.transcript = nil
	c.conversationID = ""
}
