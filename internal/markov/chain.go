package markov

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
)

// ErrNoSentence is returned when no acceptable sentence could be generated
// within the attempt budget.
var ErrNoSentence = errors.New("markov: no sentence generated")

const (
	endToken = "\x00"
	maxWords = 50
	minWords = 2
)

// State is the serializable form of a Chain.
type State struct {
	Starts      []string            `json:"starts"`
	Transitions map[string][]string `json:"transitions"`
	Trained     int                 `json:"trained"`
}

// Chain is a word-level first-order Markov model. Safe for concurrent use;
// generation takes a read lock, training a write lock.
type Chain struct {
	mu          sync.RWMutex
	starts      []string
	transitions map[string][]string
	trained     int
}

// New returns an empty Chain.
func New() *Chain {
	return &Chain{transitions: make(map[string][]string)}
}

// FromState rebuilds a Chain from persisted state.
func FromState(st State) *Chain {
	c := New()
	c.starts = append(c.starts, st.Starts...)
	for word, next := range st.Transitions {
		c.transitions[word] = append([]string(nil), next...)
	}
	c.trained = st.Trained
	return c
}

// State returns a deep copy of the chain for persistence.
func (c *Chain) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st := State{
		Starts:      append([]string(nil), c.starts...),
		Transitions: make(map[string][]string, len(c.transitions)),
		Trained:     c.trained,
	}
	for word, next := range c.transitions {
		st.Transitions[word] = append([]string(nil), next...)
	}
	return st
}

// Empty reports whether the chain has nothing to generate from.
func (c *Chain) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.starts) == 0
}

// Trained returns how many sentences the chain has absorbed.
func (c *Chain) Trained() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trained
}

// Train merges contents into the chain and returns how many sentences were
// absorbed. Lines shorter than two words carry no transition and are skipped.
func (c *Chain) Train(contents []string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	absorbed := 0
	for _, content := range contents {
		words := strings.Fields(content)
		if len(words) < minWords {
			continue
		}
		c.starts = append(c.starts, words[0])
		for i := 0; i < len(words)-1; i++ {
			c.transitions[words[i]] = append(c.transitions[words[i]], words[i+1])
		}
		last := words[len(words)-1]
		c.transitions[last] = append(c.transitions[last], endToken)
		absorbed++
	}
	c.trained += absorbed
	return absorbed
}

// Generate walks the chain from seed (or a random start when seed is empty
// or unknown) until a sentence end, retrying up to attempts times.
func (c *Chain) Generate(seed string, attempts int) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.starts) == 0 {
		return "", ErrNoSentence
	}
	if attempts < 1 {
		attempts = 1
	}

	start := c.resolveSeed(seed)
	for i := 0; i < attempts; i++ {
		if sentence, ok := c.walk(start); ok {
			return sentence, nil
		}
	}
	return "", ErrNoSentence
}

// resolveSeed returns a usable start word: the seed when the chain knows it
// (case-insensitively), a random start otherwise.
func (c *Chain) resolveSeed(seed string) string {
	if seed != "" {
		if _, ok := c.transitions[seed]; ok {
			return seed
		}
		for word := range c.transitions {
			if strings.EqualFold(word, seed) {
				return word
			}
		}
	}
	return c.starts[rand.Intn(len(c.starts))]
}

func (c *Chain) walk(start string) (string, bool) {
	words := []string{start}
	current := start
	for len(words) < maxWords {
		next := c.transitions[current]
		if len(next) == 0 {
			break
		}
		pick := next[rand.Intn(len(next))]
		if pick == endToken {
			break
		}
		words = append(words, pick)
		current = pick
	}
	if len(words) < minWords {
		return "", false
	}
	return strings.Join(words, " "), true
}
