package identity

import (
	"math/rand"
	"sync"

	"webpulse/internal/geo"
)

// Persona is the synthetic client identity chosen for one hit.
type Persona struct {
	UserAgent      string
	AcceptLanguage string
	Referer        string
	Location       geo.Location
}

// Generator draws personas from the static catalogs. Each field is drawn
// independently, so personas are diverse but not fully coherent (a Tokyo
// visitor may carry a German accept-language). Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Persona returns a new synthetic identity. deviceRatio is the desktop
// share in percent: a draw in [0,100) below it selects a desktop user
// agent, otherwise a mobile one.
func (g *Generator) Persona(deviceRatio float64) Persona {
	g.mu.Lock()
	defer g.mu.Unlock()

	var agent string
	if g.rng.Float64()*100 < deviceRatio {
		agent = desktopAgents[g.rng.Intn(len(desktopAgents))]
	} else {
		agent = mobileAgents[g.rng.Intn(len(mobileAgents))]
	}

	return Persona{
		UserAgent:      agent,
		AcceptLanguage: acceptLanguages[g.rng.Intn(len(acceptLanguages))],
		Referer:        referers[g.rng.Intn(len(referers))],
		Location:       geo.Catalog[g.rng.Intn(len(geo.Catalog))],
	}
}
