package score

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/docfind/internal/domain/search/result"
)

// Weights are the per-field weights and the phrase multiplier.
type Weights struct {
	Title       float64
	Tag         float64
	Body        float64
	PhraseBoost float64
}

// DefaultWeights: title 3, tags 2, body 1, phrase boost 1.5.
func DefaultWeights() Weights {
	return Weights{Title: 3, Tag: 2, Body: 1, PhraseBoost: 1.5}
}

// Validate rejects negative and non-finite weights. A NaN or Inf weight
// would make scores unencodable.
func (w Weights) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"title_weight", w.Title},
		{"tag_weight", w.Tag},
		{"body_weight", w.Body},
		{"phrase_boost", w.PhraseBoost},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s must be a finite number", f.name)
		}
		if f.v < 0 {
			return fmt.Errorf("%s must not be negative", f.name)
		}
	}
	return nil
}

// For returns the weight of a field.
func (w Weights) For(f result.Field) float64 {
	switch f {
	case result.Title:
		return w.Title
	case result.Tags:
		return w.Tag
	case result.Body:
		return w.Body
	default:
		return 0
	}
}
