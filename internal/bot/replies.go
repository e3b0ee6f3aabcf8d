package bot

import "sync"

// ReplyTracker remembers the messages the bot has sent since startup so an
// administrator can bulk-remove them. Not persisted across restarts.
type ReplyTracker struct {
	mu        sync.Mutex
	byChannel map[string][]string
	total     int
}

func NewReplyTracker() *ReplyTracker {
	return &ReplyTracker{byChannel: make(map[string][]string)}
}

// Add records one sent message.
func (t *ReplyTracker) Add(channelID, messageID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byChannel[channelID] = append(t.byChannel[channelID], messageID)
	t.total++
}

// Len returns the number of tracked messages.
func (t *ReplyTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// Drain returns all tracked message IDs grouped by channel and forgets them.
func (t *ReplyTracker) Drain() map[string][]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	drained := t.byChannel
	t.byChannel = make(map[string][]string)
	t.total = 0
	return drained
}
