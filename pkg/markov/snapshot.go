package markov

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"
)

// ErrInvalidSnapshot is returned when snapshot data does not describe a
// well-formed chain.
var ErrInvalidSnapshot = errors.New("markov: invalid snapshot")

// Snapshot is the serializable representation of a trained chain, used for
// JSON-based export and import. State ids are positions in Tokens shifted
// by one: id 0 is the sequence boundary and Tokens[i] has id i+1. Tokens
// appear in registration order and transitions in first-observation order
// per state, so rebuilding from a snapshot reproduces the chain exactly.
type Snapshot[T comparable] struct {
	Tokens      []T          `json:"tokens"`
	Transitions []Transition `json:"transitions"`
}

// Transition is a single observed transition within a Snapshot, with the
// number of times it was seen.
type Transition struct {
	From  int `json:"from"`
	To    int `json:"to"`
	Count int `json:"count"`
}

// Snapshot captures the chain's complete state.
func (c *Chain[T]) Snapshot() Snapshot[T] {
	snap := Snapshot[T]{Tokens: make([]T, len(c.tokens)-1)}
	copy(snap.Tokens, c.tokens[1:])
	for from, d := range c.table {
		for _, t := range d.entries {
			snap.Transitions = append(snap.Transitions, Transition{From: from, To: t.to, Count: t.count})
		}
	}
	return snap
}

// FromSnapshot rebuilds a chain from snapshot data, yielding the same
// states and counts the snapshot describes. Data that does not describe a
// well-formed chain (duplicate tokens, ids out of range, counts below one)
// is rejected with an error wrapping ErrInvalidSnapshot. Observations for
// the same transition are merged.
func FromSnapshot[T comparable](snap Snapshot[T], opts ...Option) (*Chain[T], error) {
	c := New[T](opts...)
	if err := c.Merge(snap); err != nil {
		return nil, err
	}
	return c, nil
}

// Merge folds snapshot data into the chain, registering tokens it has not
// seen before and adding counts to transitions both sides share. Snapshot
// ids are matched to the chain's states by token value, so two chains
// trained separately can be combined regardless of their internal
// numbering. A malformed snapshot is rejected with an error wrapping
// ErrInvalidSnapshot and leaves the chain unchanged.
func (c *Chain[T]) Merge(snap Snapshot[T]) error {
	seen := make(map[T]struct{}, len(snap.Tokens))
	for i, tok := range snap.Tokens {
		if _, dup := seen[tok]; dup {
			return fmt.Errorf("%w: duplicate token at index %d", ErrInvalidSnapshot, i)
		}
		seen[tok] = struct{}{}
	}
	for _, tr := range snap.Transitions {
		if tr.From < 0 || tr.From > len(snap.Tokens) || tr.To < 0 || tr.To > len(snap.Tokens) {
			return fmt.Errorf("%w: transition %d -> %d references an unknown state", ErrInvalidSnapshot, tr.From, tr.To)
		}
		if tr.Count < 1 {
			return fmt.Errorf("%w: transition %d -> %d has count %d", ErrInvalidSnapshot, tr.From, tr.To, tr.Count)
		}
	}

	// Only mutate once the whole snapshot has been validated.
	ids := make([]int, len(snap.Tokens)+1)
	for i, tok := range snap.Tokens {
		ids[i+1] = c.intern(tok)
	}
	for _, tr := range snap.Transitions {
		c.table[ids[tr.From]].recordN(ids[tr.To], tr.Count)
	}
	return nil
}

// Equal reports whether two chains encode the same statistics: the same
// token set and the same transition counts between the same token values.
// Internal id numbering and observation order are not compared, so a chain
// loaded from storage compares equal to the one that was saved even if its
// states were registered in a different order.
func (c *Chain[T]) Equal(o *Chain[T]) bool {
	if len(c.tokens) != len(o.tokens) {
		return false
	}
	for from, d := range c.table {
		oFrom := sentinelID
		if from != sentinelID {
			id, ok := o.ids[c.tokens[from]]
			if !ok {
				return false
			}
			oFrom = id
		}
		od := &o.table[oFrom]
		if d.total != od.total || len(d.entries) != len(od.entries) {
			return false
		}
		for _, tr := range d.entries {
			oTo := sentinelID
			if tr.to != sentinelID {
				id, ok := o.ids[c.tokens[tr.to]]
				if !ok {
					return false
				}
				oTo = id
			}
			i, ok := od.index[oTo]
			if !ok || od.entries[i].count != tr.count {
				return false
			}
		}
	}
	return true
}

// Save writes the chain's snapshot to w as indented JSON.
func (c *Chain[T]) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.Snapshot()); err != nil {
		return fmt.Errorf("could not encode snapshot: %w", err)
	}
	return nil
}

// Load reads a JSON snapshot from r and rebuilds the chain it describes.
func Load[T comparable](r io.Reader, opts ...Option) (*Chain[T], error) {
	var snap Snapshot[T]
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("could not decode snapshot: %w", err)
	}
	return FromSnapshot(snap, opts...)
}

// SaveFile writes the chain's snapshot to path atomically, so an
// interrupted write never leaves a truncated snapshot behind.
func (c *Chain[T]) SaveFile(path string) error {
	var buf bytes.Buffer
	if err := c.Save(&buf); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("could not write snapshot file: %w", err)
	}
	return nil
}

// LoadFile reads a JSON snapshot from the file at path.
func LoadFile[T comparable](path string, opts ...Option) (*Chain[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open snapshot file: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)
	return Load[T](f, opts...)
}
