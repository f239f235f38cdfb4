package tetris

import (
	"math/rand/v2"
)

// Spawn describes the next tetromino to enter the matrix.
type Spawn struct {
	Kind Kind
	// Column is the matrix column of the tetromino's leftmost filled cell.
	// It's only used when HasColumn is set, otherwise the tetromino spawns centered.
	Column    int
	HasColumn bool
}

// Spawner hands out the tetrominos of a game.
type Spawner interface {
	Next() (Spawn, error)
}

// RandomSpawner draws every kind with the same probability.
type RandomSpawner struct {
	rand *rand.Rand
}

// NewRandomSpawner returns a spawner whose sequence is fully determined by seed.
func NewRandomSpawner(seed uint64) *RandomSpawner {
	return &RandomSpawner{rand: rand.New(rand.NewPCG(seed, seed))} //nolint:gosec
}

func (s *RandomSpawner) Next() (Spawn, error) {
	return Spawn{Kind: Kinds[s.rand.IntN(len(Kinds))]}, nil
}

// FeedSpawner hands out a fixed list of placements in order.
type FeedSpawner struct {
	placements []Placement
	next       int
}

func NewFeedSpawner(p []Placement) *FeedSpawner {
	return &FeedSpawner{placements: p}
}

func (f *FeedSpawner) Next() (Spawn, error) {
	if f.next >= len(f.placements) {
		return Spawn{}, ErrFeedExhausted
	}
	p := f.placements[f.next]
	f.next++
	return Spawn{Kind: p.Kind, Column: p.Column, HasColumn: true}, nil
}

// Remaining returns how many placements haven't been handed out yet.
func (f *FeedSpawner) Remaining() int {
	return len(f.placements) - f.next
}
