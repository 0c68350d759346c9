package registry

import (
	"errors"
	"fmt"
	"sync"

	metrics "github.com/rcrowley/go-metrics"
	"github.com/rs/zerolog"

	"github.com/f3rmion/pointkey/bls"
	"github.com/f3rmion/pointkey/merkle"
)

// DefaultLimit is the maximum number of keys a registry commits to,
// matching the validator registry limit of the beacon state.
const DefaultLimit uint64 = 1 << 40

// DefaultShards is the number of index shards.
const DefaultShards = 16

// ErrFull is returned by Add when the registry holds Limit keys.
var ErrFull = errors.New("registry is full")

// Key is everything the registry needs from a public key. It never sees a
// backend point; any wrapper instantiation satisfies it.
type Key interface {
	Serialize() [bls.PublicKeyLength]byte
	HexString() string
	Hash64() uint64
	HashTreeRootWith(h merkle.Hasher) [32]byte
}

// DecodeFunc decodes untrusted bytes into a validated Key.
type DecodeFunc func(data []byte) (Key, error)

// Decoder adapts a backend's typed decode function to a DecodeFunc.
func Decoder[K Key](decode func([]byte) (K, error)) DecodeFunc {
	return func(data []byte) (Key, error) {
		k, err := decode(data)
		if err != nil {
			return nil, err
		}
		return k, nil
	}
}

type shard struct {
	mu    sync.RWMutex
	index map[[bls.PublicKeyLength]byte]int
}

// Registry is an append-only, deduplicated list of validator public keys.
// A key's position is its validator index. Keys are identified only by their
// canonical bytes, so the same key decoded by different backends is found
// at the same index.
//
// Registry is safe for concurrent use.
type Registry struct {
	decode DecodeFunc
	log    zerolog.Logger
	hasher merkle.Hasher
	limit  uint64
	stats  *Stats

	shards []*shard

	mu   sync.RWMutex
	keys []Key
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for rejected input.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// WithMetrics registers the registry's counters on m.
func WithMetrics(m metrics.Registry) Option {
	return func(r *Registry) { r.stats = NewStats(m) }
}

// WithHasher sets the node hasher used by Root.
func WithHasher(h merkle.Hasher) Option {
	return func(r *Registry) { r.hasher = h }
}

// WithLimit sets the maximum number of keys.
func WithLimit(n uint64) Option {
	return func(r *Registry) { r.limit = n }
}

// WithShards sets the number of index shards.
func WithShards(n int) Option {
	return func(r *Registry) { r.shards = newShards(n) }
}

func newShards(n int) []*shard {
	if n < 1 {
		n = 1
	}
	shards := make([]*shard, n)
	for i := range shards {
		shards[i] = &shard{index: make(map[[bls.PublicKeyLength]byte]int)}
	}
	return shards
}

// New creates an empty registry that decodes untrusted input with decode.
func New(decode DecodeFunc, opts ...Option) *Registry {
	r := &Registry{
		decode: decode,
		log:    zerolog.Nop(),
		hasher: merkle.Default,
		limit:  DefaultLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.stats == nil {
		r.stats = NewStats(metrics.NewRegistry())
	}
	if r.shards == nil {
		r.shards = newShards(DefaultShards)
	}
	return r
}

func (r *Registry) shardFor(k Key) *shard {
	return r.shards[k.Hash64()%uint64(len(r.shards))]
}

// Add appends k unless an equal key is already present.
// Returns the key's index and whether it was newly added.
func (r *Registry) Add(k Key) (int, bool, error) {
	id := k.Serialize()
	s := r.shardFor(k)

	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.index[id]; ok {
		r.stats.duplicates.Inc(1)
		return i, false, nil
	}

	r.mu.Lock()
	if uint64(len(r.keys)) >= r.limit {
		r.mu.Unlock()
		return -1, false, ErrFull
	}
	i := len(r.keys)
	r.keys = append(r.keys, k)
	r.stats.size.Update(int64(len(r.keys)))
	r.mu.Unlock()

	s.index[id] = i
	r.stats.added.Inc(1)
	return i, true, nil
}

// AddBytes decodes a compressed key and adds it.
// Decode failures are returned unchanged, counted and logged.
func (r *Registry) AddBytes(data []byte) (int, bool, error) {
	k, err := r.decode(data)
	if err != nil {
		r.reject(err, fmt.Sprintf("%x", data))
		return -1, false, err
	}
	return r.Add(k)
}

// AddHex decodes a 0x-prefixed hex key and adds it.
func (r *Registry) AddHex(s string) (int, bool, error) {
	data, err := bls.DecodeHex(s)
	if err != nil {
		r.reject(err, s)
		return -1, false, err
	}
	return r.AddBytes(data)
}

func (r *Registry) reject(err error, input string) {
	r.stats.rejected.Inc(1)
	r.log.Warn().Err(err).Str("input", input).Msg("rejected public key")
}

// IsMalformed reports whether err came from decoding untrusted input, as
// opposed to a registry condition such as ErrFull.
func IsMalformed(err error) bool {
	var de *bls.DecodeError
	return errors.As(err, &de)
}

// Index returns the index of the key equal to k.
func (r *Registry) Index(k Key) (int, bool) {
	s := r.shardFor(k)
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[k.Serialize()]
	return i, ok
}

// Contains reports whether a key equal to k is present.
func (r *Registry) Contains(k Key) bool {
	_, ok := r.Index(k)
	return ok
}

// Get returns the key at index i.
func (r *Registry) Get(i int) (Key, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.keys) {
		return nil, false
	}
	return r.keys[i], true
}

// Len returns the number of keys.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys)
}

// Keys returns the keys in index order.
func (r *Registry) Keys() []Key {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Key(nil), r.keys...)
}

// Limit returns the maximum number of keys.
func (r *Registry) Limit() uint64 {
	return r.limit
}

// Stats returns the registry's counters.
func (r *Registry) Stats() *Stats {
	return r.stats
}

// Root returns the commitment to the key list: each key's tree root is a
// leaf, the leaves are merkleized up to Limit, and the count is mixed in.
func (r *Registry) Root() ([32]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	leaves := make([][merkle.ChunkSize]byte, len(r.keys))
	for i, k := range r.keys {
		leaves[i] = k.HashTreeRootWith(r.hasher)
	}
	root, err := merkle.Merkleize(r.hasher, leaves, r.limit)
	if err != nil {
		return [32]byte{}, err
	}
	return merkle.MixInLength(r.hasher, root, len(leaves)), nil
}
