package hit

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"webpulse/internal/geo"
)

// Record describes one simulated request attempt. Records are ephemeral:
// produced, handed to listeners, then discarded.
type Record struct {
	Seq       int64        `json:"seq"`
	Timestamp time.Time    `json:"timestamp"`
	Worker    int          `json:"worker"`
	IP        string       `json:"ip"`
	Location  geo.Location `json:"location"`
	UserAgent string       `json:"user_agent"`
	Status    int          `json:"status,omitempty"`
	Error     string       `json:"error,omitempty"`
	Params    []string     `json:"params,omitempty"`
}

// OK reports whether the attempt got a usable response (2xx/3xx).
func (r *Record) OK() bool {
	return r.Error == "" && r.Status >= 200 && r.Status < 400
}

func (r *Record) Bytes() ([]byte, error) {
	return json.Marshal(r)
}

func (r *Record) String() string {
	b, err := json.Marshal(r)
	if err != nil {
		zap.L().Error(err.Error())
	}
	return string(b)
}
