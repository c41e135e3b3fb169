package engine

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"webpulse/internal/hit"
)

// reporter writes status lines to the engine's text stream. The external
// supervision layer matches these lines by substring, so their shape is a
// contract: a bare numeric HTTP status surrounded by spaces marks a
// countable hit, the ACTIVE token comes with a ~<rate>/min fragment, and
// the IDLE and ERROR tokens mark idle phases and failed hits.
type reporter struct {
	mu sync.Mutex
	w  io.Writer
}

func newReporter(w io.Writer) *reporter {
	return &reporter{w: w}
}

func (r *reporter) active(worker, rate int, d time.Duration) {
	r.printf("[worker %d] ACTIVE ~%d/min for %s", worker, rate, d.Round(time.Second))
}

func (r *reporter) idle(worker int, d time.Duration) {
	r.printf("[worker %d] IDLE for %s", worker, d.Round(time.Second))
}

func (r *reporter) hit(rec hit.Record) {
	if rec.Error != "" {
		r.printf("[worker %d] #%d ERROR %s ip=%s %s/%s",
			rec.Worker, rec.Seq, rec.Error, rec.IP, rec.Location.Country, rec.Location.City)
		return
	}

	params := ""
	if len(rec.Params) > 0 {
		params = " params=" + strings.Join(rec.Params, ",")
	}
	r.printf("[worker %d] #%d %d ip=%s %s/%s%s",
		rec.Worker, rec.Seq, rec.Status, rec.IP, rec.Location.Country, rec.Location.City, params)
}

func (r *reporter) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, time.Now().Format("2006-01-02 15:04:05")+" "+format+"\n", args...)
}
