package symast

import (
	"encoding/binary"
	"fmt"
	"strings"
	"sync"

	"github.com/benbjohnson/immutable"
	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Mode selects the serializer used by Context.Render.
type Mode int

// Representation modes.
const (
	SMT Mode = iota
	PSEUDO
)

// String returns the name of the mode.
func (m Mode) String() string {
	switch m {
	case SMT:
		return "smt"
	case PSEUDO:
		return "pseudo"
	default:
		return fmt.Sprintf("Mode<%d>", int(m))
	}
}

// ParseMode returns the mode named by s. Matching is case-insensitive and
// accepts "python" as an alias of "pseudo".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "smt", "smt2", "smtlib":
		return SMT, nil
	case "pseudo", "python", "py":
		return PSEUDO, nil
	default:
		return SMT, errors.Errorf("unknown representation mode: %q", s)
	}
}

// Stats reports structural sharing activity of a Context.
type Stats struct {
	CacheLookups uint
	CacheHits    uint
	CachedNodes  uint
}

// Context constructs nodes, allocates variables, registers shared
// sub-expressions and owns the active representation mode.
//
// A Context is safe for concurrent use. Nodes it returns are immutable and
// may be rendered without holding any lock.
type Context struct {
	mu sync.Mutex

	mode       Mode
	nextVarID  uint64
	nextExprID uint64
	exprs      *immutable.SortedMap // registered expressions by id

	sharing bool
	cache   map[uint64][]Node // hash-consing buckets
	ids     map[Node]uint64   // interned node identities
	stats   Stats

	logger logrus.FieldLogger
}

// Option configures a Context.
type Option func(*Context)

// WithMode sets the initial representation mode. Defaults to SMT.
func WithMode(mode Mode) Option {
	return func(c *Context) { c.mode = mode }
}

// WithSharing enables structural sharing of identical subtrees.
func WithSharing(enabled bool) Option {
	return func(c *Context) { c.sharing = enabled }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Context) { c.logger = logger }
}

// NewContext returns a new instance of Context.
func NewContext(opts ...Option) *Context {
	c := &Context{
		mode:   SMT,
		exprs:  immutable.NewSortedMap(&uint64Comparer{}),
		cache:  make(map[uint64][]Node),
		ids:    make(map[Node]uint64),
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mode returns the active representation mode.
func (c *Context) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode changes the active representation mode. Existing nodes are not
// modified; only subsequent calls to Render are affected.
func (c *Context) SetMode(mode Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if mode != c.mode {
		c.logger.WithFields(logrus.Fields{"from": c.mode, "to": mode}).Debug("representation mode changed")
	}
	c.mode = mode
}

// Render returns the text of n in the active representation mode.
func (c *Context) Render(n Node) string {
	switch c.Mode() {
	case PSEUDO:
		return FormatPseudo(n)
	default:
		return FormatSMT(n)
	}
}

// Stats returns a snapshot of the structural sharing statistics.
func (c *Context) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// NewVariable allocates the next sequential variable id and returns its node.
func (c *Context) NewVariable(width uint, comment string) (*Variable, error) {
	if width == 0 {
		return nil, errors.Wrap(ErrInvalidWidth, "variable: width must be positive")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	v := &Variable{ID: c.nextVarID, Width: width, Comment: comment}
	c.nextVarID++
	c.logger.WithFields(logrus.Fields{"id": v.ID, "width": width}).Debug("new symbolic variable")
	return v, nil
}

// intern returns a previously built node structurally identical to n when
// sharing is enabled. Otherwise n is returned.
func (c *Context) intern(n Node) Node {
	if !c.sharing {
		return n
	} else if _, ok := n.(*Variable); ok {
		return n
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.CacheLookups++

	h := c.hash(n)
	for _, other := range c.cache[h] {
		if shallowEqual(n, other) {
			c.stats.CacheHits++
			return other
		}
	}
	c.cache[h] = append(c.cache[h], n)
	c.stats.CachedNodes++
	c.identity(n)
	return n
}

// identity returns the interned id of n, assigning one if n is new.
func (c *Context) identity(n Node) uint64 {
	if id, ok := c.ids[n]; ok {
		return id
	}
	id := uint64(len(c.ids)) + 1
	c.ids[n] = id
	return id
}

// hash computes a hash over the kind, parameters and child identities of n.
func (c *Context) hash(n Node) uint64 {
	b := make([]byte, 0, 64)
	b = binary.AppendUvarint(b, uint64(n.Kind()))
	switch n := n.(type) {
	case *Constant:
		b = binary.AppendUvarint(b, uint64(n.Width))
		b = append(b, n.Value.Bytes()...)
	case *ExtractNode:
		b = binary.AppendUvarint(b, uint64(n.High))
		b = binary.AppendUvarint(b, uint64(n.Low))
	case *ExtendNode:
		b = binary.AppendUvarint(b, uint64(n.Bits))
	case *LetNode:
		b = append(b, n.Alias...)
	case *ReferenceNode:
		b = binary.AppendUvarint(b, n.ID)
	case *StringNode:
		b = append(b, n.Text...)
	}
	for _, child := range Children(n) {
		b = binary.AppendUvarint(b, c.identity(child))
	}
	return xxhash.Sum64(b)
}

// shallowEqual returns true if a and b have the same kind and parameters and
// identical children.
func shallowEqual(a, b Node) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case *Constant:
		return compareConstant(a, b.(*Constant)) == 0
	case *ExtractNode:
		if b := b.(*ExtractNode); a.High != b.High || a.Low != b.Low {
			return false
		}
	case *ExtendNode:
		if a.Bits != b.(*ExtendNode).Bits {
			return false
		}
	case *LetNode:
		if a.Alias != b.(*LetNode).Alias {
			return false
		}
	case *ReferenceNode:
		return a.ID == b.(*ReferenceNode).ID
	case *StringNode:
		return a.Text == b.(*StringNode).Text
	}

	ac, bc := Children(a), Children(b)
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if ac[i] != bc[i] {
			return false
		}
	}
	return true
}

// uint64Comparer compares two 64-bit unsigned integers. Implements immutable.Comparer.
type uint64Comparer struct{}

// Compare returns -1 if a is less than b, returns 1 if a is greater than b, and
// returns 0 if a is equal to b. Panic if a or b is not an int.
func (c *uint64Comparer) Compare(a, b interface{}) int {
	if i, j := a.(uint64), b.(uint64); i < j {
		return -1
	} else if i > j {
		return 1
	}
	return 0
}
