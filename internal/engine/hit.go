package engine

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"webpulse/internal/hit"
	"webpulse/internal/urlparams"
)

// hit performs one simulated request attempt. The hit counter reflects
// attempts, so it is incremented before the network call. All failures
// are captured into the record; hit never panics or returns an error.
func (e *Engine) hit(id int, rng *rand.Rand) hit.Record {
	seq := e.hits.Add(1)

	persona := e.identity.Persona(e.cfg.DesktopShare)
	addr := e.subnets.Address(persona.Location.Country, e.cfg.UniqueChance)
	target, applied := e.buildURL(rng)

	rec := hit.Record{
		Seq:       seq,
		Timestamp: time.Now(),
		Worker:    id,
		IP:        addr,
		Location:  persona.Location,
		UserAgent: persona.UserAgent,
		Params:    applied,
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, e.cfg.Method, target, nil)
	if err != nil {
		rec.Error = err.Error()
	} else {
		e.setHeaders(req, persona.UserAgent, persona.AcceptLanguage, persona.Referer, addr, rec)

		resp, err := e.client.Do(req)
		if err != nil {
			rec.Error = failureReason(err)
		} else {
			rec.Status = resp.StatusCode
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}
	}

	if !rec.OK() {
		e.failures.Add(1)
	}

	e.report.hit(rec)
	e.notify(rec)

	return rec
}

// setHeaders applies the persona and the proxy-style client identification
// headers, so the traffic looks like it arrived through a geo-aware
// reverse proxy.
func (e *Engine) setHeaders(req *http.Request, agent, lang, referer, addr string, rec hit.Record) {
	req.Header.Set("User-Agent", agent)
	req.Header.Set("Accept-Language", lang)
	if referer != "" {
		req.Header.Set("Referer", referer)
	}

	req.Header.Set("X-Forwarded-For", addr)
	req.Header.Set("X-Real-IP", addr)
	req.Header.Set("X-Geo-Country", rec.Location.Country)
	req.Header.Set("X-Geo-Region", rec.Location.Region)
	req.Header.Set("X-Geo-City", rec.Location.City)
	req.Header.Set("X-Geo-Lat", strconv.FormatFloat(rec.Location.Lat, 'f', 4, 64))
	req.Header.Set("X-Geo-Lon", strconv.FormatFloat(rec.Location.Lon, 'f', 4, 64))
}

// buildURL appends the cache-busting token and the injected parameters,
// keeping rule order, after any query the target already carries.
func (e *Engine) buildURL(rng *rand.Rand) (string, []string) {
	u := *e.target

	parts := make([]string, 0, 3)
	if u.RawQuery != "" {
		parts = append(parts, u.RawQuery)
	}
	parts = append(parts, "cb="+uuid.NewString())

	frag, applied := urlparams.Encode(e.cfg.Params, rng)
	if frag != "" {
		parts = append(parts, frag)
	}

	u.RawQuery = strings.Join(parts, "&")
	return u.String(), applied
}

// failureReason maps a transport error to the short reason recorded and
// logged for the hit.
func failureReason(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return err.Error()
}
