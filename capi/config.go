package capi

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/goxgb/pkg/errors"
)

// ConstructionConfig holds the options forwarded to a construction entry
// point.
type ConstructionConfig struct {
	// Missing is the sentinel marking absent values in the input. Input
	// entries equal to the sentinel are dropped during construction; a NaN
	// sentinel drops NaN entries.
	Missing float32

	// NThread is the thread count for construction. Zero means the engine
	// default (one worker per core).
	NThread int
}

// DefaultConstructionConfig returns the config the entry points assume when
// none is given: NaN missing sentinel, engine-default threading.
func DefaultConstructionConfig() ConstructionConfig {
	return ConstructionConfig{Missing: float32(math.NaN())}
}

// JSON renders the config in the engine's JSON dialect. A NaN missing
// sentinel is written as the bare token NaN, and nthread is omitted when the
// engine default is requested, e.g.:
//
//	{"missing": NaN, "nthread": 1}
//	{"missing": NaN}
func (c ConstructionConfig) JSON() string {
	missing := "NaN"
	if !math.IsNaN(float64(c.Missing)) {
		missing = strconv.FormatFloat(float64(c.Missing), 'g', -1, 32)
	}
	if c.NThread > 0 {
		return fmt.Sprintf(`{"missing": %s, "nthread": %d}`, missing, c.NThread)
	}
	return fmt.Sprintf(`{"missing": %s}`, missing)
}

// ParseConstructionConfig decodes a construction config document, accepting
// the bare NaN token the dialect uses for the missing sentinel.
func ParseConstructionConfig(doc string) (ConstructionConfig, error) {
	cfg := DefaultConstructionConfig()

	// The dialect writes NaN as a bare token, which encoding/json rejects;
	// quote it before decoding.
	normalized := strings.ReplaceAll(doc, "NaN", `"NaN"`)

	var raw struct {
		Missing json.RawMessage `json:"missing"`
		NThread *int            `json:"nthread"`
	}
	if err := json.Unmarshal([]byte(normalized), &raw); err != nil {
		return cfg, errors.NewValidationError("config", "invalid JSON document", doc)
	}

	if len(raw.Missing) > 0 {
		s := string(raw.Missing)
		if s != `"NaN"` {
			v, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return cfg, errors.NewValidationError("config",
					"missing must be a number or NaN", s)
			}
			cfg.Missing = float32(v)
		}
	}

	if raw.NThread != nil {
		if *raw.NThread < 1 {
			return cfg, errors.NewValidationError("config",
				"nthread must be a positive integer", *raw.NThread)
		}
		cfg.NThread = *raw.NThread
	}

	return cfg, nil
}
