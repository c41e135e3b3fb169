package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func inCatalog(catalog []string, agent string) bool {
	for _, a := range catalog {
		if a == agent {
			return true
		}
	}
	return false
}

func TestDesktopOnlyRatio(t *testing.T) {
	g := NewGenerator(1)

	for i := 0; i < 500; i++ {
		p := g.Persona(100)
		if !inCatalog(desktopAgents[:], p.UserAgent) {
			t.Fatalf("expected desktop user agent, got %q", p.UserAgent)
		}
	}
}

func TestMobileOnlyRatio(t *testing.T) {
	g := NewGenerator(1)

	for i := 0; i < 500; i++ {
		p := g.Persona(0)
		if !inCatalog(mobileAgents[:], p.UserAgent) {
			t.Fatalf("expected mobile user agent, got %q", p.UserAgent)
		}
	}
}

func TestDeviceMixSplit(t *testing.T) {
	const (
		trials    = 10000
		ratio     = 70.0
		tolerance = 0.03
	)

	g := NewGenerator(7)

	desktop := 0
	for i := 0; i < trials; i++ {
		p := g.Persona(ratio)
		if inCatalog(desktopAgents[:], p.UserAgent) {
			desktop++
		}
	}

	got := float64(desktop) / trials
	assert.InDelta(t, ratio/100, got, tolerance)
}

func TestFieldsComeFromCatalogs(t *testing.T) {
	g := NewGenerator(3)

	for i := 0; i < 200; i++ {
		p := g.Persona(50)
		assert.Contains(t, acceptLanguages[:], p.AcceptLanguage)
		assert.Contains(t, referers[:], p.Referer)
		assert.NotEmpty(t, p.Location.Country)
	}
}

func TestRandomizationActuallyChangesValues(t *testing.T) {
	g := NewGenerator(11)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		p := g.Persona(50)
		seen[p.UserAgent+"|"+p.AcceptLanguage+"|"+p.Location.City] = struct{}{}
	}

	if len(seen) < 10 {
		t.Fatalf("personas barely vary: %d distinct out of 100", len(seen))
	}
}
