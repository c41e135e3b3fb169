// Package subnet issues synthetic client IPv4 addresses and tracks the
// 3-octet prefixes it has handed out, so a configurable share of traffic
// looks like returning visitors from already-seen networks.
package subnet

import (
	"fmt"
	"math/rand"
	"sync"
)

const (
	hostOctetMin = 1
	hostOctetMax = 254
)

type prefix [3]byte

// Tracker owns the prefix set for one engine instance. Instances of
// distinct trackers share nothing. Safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	rng    *rand.Rand
	issued []prefix
	index  map[prefix]struct{}
}

func NewTracker(seed int64) *Tracker {
	return &Tracker{
		rng:   rand.New(rand.NewSource(seed)),
		index: make(map[prefix]struct{}),
	}
}

// Address returns a synthetic IPv4 address for a visitor from the given
// country. A draw in [0,1) below uniqueProb, or an empty prefix set,
// produces a fresh subnet from the country's first-octet pool; otherwise
// the address reuses a previously issued subnet with a new host octet,
// simulating a returning visitor from the same network.
func (t *Tracker) Address(countryCode string, uniqueProb float64) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var p prefix
	if t.rng.Float64() < uniqueProb || len(t.issued) == 0 {
		p = t.newPrefix(countryCode)
	} else {
		p = t.issued[t.rng.Intn(len(t.issued))]
	}

	host := hostOctetMin + t.rng.Intn(hostOctetMax-hostOctetMin+1)
	return fmt.Sprintf("%d.%d.%d.%d", p[0], p[1], p[2], host)
}

// Count returns the number of distinct subnets issued so far.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.issued)
}

// newPrefix synthesizes a subnet and records it. A fresh draw can collide
// with an already-issued prefix; the collision is kept as a single entry,
// matching how a consuming system buckets visitors by prefix.
func (t *Tracker) newPrefix(countryCode string) prefix {
	pool, ok := firstOctets[countryCode]
	if !ok {
		pool = defaultFirstOctets
	}

	p := prefix{
		byte(pool[t.rng.Intn(len(pool))]),
		byte(t.rng.Intn(256)),
		byte(t.rng.Intn(256)),
	}

	if _, seen := t.index[p]; !seen {
		t.index[p] = struct{}{}
		t.issued = append(t.issued, p)
	}

	return p
}
