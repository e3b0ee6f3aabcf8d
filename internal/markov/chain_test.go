package markov

import (
	"errors"
	"strings"
	"testing"
)

func TestTrainAndGenerate(t *testing.T) {
	c := New()
	absorbed := c.Train([]string{
		"the quick brown fox",
		"the lazy dog sleeps",
		"short", // single word, no transition
		"",
	})
	if absorbed != 2 {
		t.Fatalf("absorbed = %d, want 2", absorbed)
	}
	if c.Trained() != 2 {
		t.Fatalf("Trained() = %d, want 2", c.Trained())
	}

	sentence, err := c.Generate("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(strings.Fields(sentence)) < 2 {
		t.Fatalf("sentence %q too short", sentence)
	}
}

func TestGenerateWithSeed(t *testing.T) {
	c := New()
	c.Train([]string{"hello world again"})

	sentence, err := c.Generate("hello", 10)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(sentence, "hello") {
		t.Fatalf("sentence %q should start with the seed", sentence)
	}

	// Seed matching is case-insensitive.
	sentence, err = c.Generate("HELLO", 10)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(strings.ToLower(sentence), "hello") {
		t.Fatalf("sentence %q should start with the folded seed", sentence)
	}

	// An unknown seed falls back to a random start rather than failing.
	if _, err := c.Generate("zebra", 10); err != nil {
		t.Fatalf("unknown seed should fall back: %v", err)
	}
}

func TestGenerateEmptyChain(t *testing.T) {
	c := New()
	if _, err := c.Generate("", 10); !errors.Is(err, ErrNoSentence) {
		t.Fatalf("err = %v, want ErrNoSentence", err)
	}
}

func TestStateRoundTrip(t *testing.T) {
	c := New()
	c.Train([]string{"one two three", "four five six"})

	rebuilt := FromState(c.State())
	if rebuilt.Trained() != 2 {
		t.Fatalf("rebuilt Trained() = %d, want 2", rebuilt.Trained())
	}
	sentence, err := rebuilt.Generate("one", 10)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(sentence, "one") {
		t.Fatalf("sentence %q should start with seed from rebuilt chain", sentence)
	}
}

func TestStateIsDeepCopy(t *testing.T) {
	c := New()
	c.Train([]string{"alpha beta"})

	st := c.State()
	st.Starts[0] = "mutated"
	st.Transitions["alpha"][0] = "mutated"

	sentence, err := c.Generate("alpha", 10)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(sentence, "mutated") {
		t.Fatal("mutating a State must not affect the chain")
	}
}
