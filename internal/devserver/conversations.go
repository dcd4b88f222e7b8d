package devserver

import (
	"sync"

	"github.com/google/uuid"
)

// conversations remembers the questions asked in each chat thread
type conversations struct {
	mu      sync.Mutex
	history map[string][]string
}

func newConversations() *conversations {
	return &conversations{history: make(map[string][]string)}
}

// resolve returns id, or a fresh id when none was sent
func (c *conversations) resolve(id *string) string {
	if id != nil && *id != "" {
		return *id
	}
	return uuid.NewString()
}

func (c *conversations) append(id, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history[id] = append(c.history[id], message)
}

// turns returns how many messages the conversation has seen
func (c *conversations) turns(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.history[id])
}
