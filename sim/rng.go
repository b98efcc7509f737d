package sim

import (
	"hash/fnv"
	"math/rand"
	"sort"
)

// SimulationKey is the master seed of an experiment.
// The same key and configuration reproduce the same histogram.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Stream names. Each experiment kind draws from its own stream so that adding
// draws to one kind never shifts another kind's outcomes.
const (
	// SubsystemReedFrost is seeded with the master seed itself, so --seed
	// reproduces rand.New(rand.NewSource(seed)).
	SubsystemReedFrost = "reed-frost"

	SubsystemMarkov  = "markov"
	SubsystemSampler = "sampler"
)

// Stream is a seeded uniform source that counts the grid draws taken from it.
// It satisfies exact.UniformSource.
type Stream struct {
	*rand.Rand
	name  string
	seed  int64
	draws int64
}

// Intn returns a value in [0, n) and counts one draw.
func (s *Stream) Intn(n int) int {
	s.draws++
	return s.Rand.Intn(n)
}

// Name returns the stream name.
func (s *Stream) Name() string { return s.name }

// Seed returns the derived seed the stream was created with.
func (s *Stream) Seed() int64 { return s.seed }

// Draws returns how many Intn calls the stream has served.
func (s *Stream) Draws() int64 { return s.draws }

// PartitionedRNG hands out one Stream per name, all derived from one key.
// The reed-frost stream uses the key as its seed; every other stream uses
// key XOR fnv1a64(name).
//
// Not safe for concurrent use.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*Stream
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:     key,
		streams: make(map[string]*Stream),
	}
}

// ForSubsystem returns the named stream, creating it on first use.
// Repeated calls return the same *Stream.
func (p *PartitionedRNG) ForSubsystem(name string) *Stream {
	if s, ok := p.streams[name]; ok {
		return s
	}
	seed := deriveSeed(p.key, name)
	s := &Stream{Rand: rand.New(rand.NewSource(seed)), name: name, seed: seed}
	p.streams[name] = s
	return s
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// Draws returns the draw count of every stream created so far, keyed by name.
func (p *PartitionedRNG) Draws() map[string]int64 {
	out := make(map[string]int64, len(p.streams))
	for name, s := range p.streams {
		out[name] = s.draws
	}
	return out
}

// StreamNames returns the names of the streams created so far, sorted.
func (p *PartitionedRNG) StreamNames() []string {
	names := make([]string, 0, len(p.streams))
	for name := range p.streams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func deriveSeed(key SimulationKey, name string) int64 {
	if name == SubsystemReedFrost {
		return int64(key)
	}
	return int64(key) ^ fnv1a64(name)
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
