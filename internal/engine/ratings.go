package engine

// Trait identifies one of the six CX proficiency dimensions tracked per user.
type Trait string

const (
	TraitEmpathy      Trait = "empathy"
	TraitListening    Trait = "listening"
	TraitTrust        Trait = "trust"
	TraitFollowUp     Trait = "followUp"
	TraitClosing      Trait = "closing"
	TraitRelationship Trait = "relationship"
)

// Traits lists every trait in canonical order.
var Traits = []Trait{
	TraitEmpathy,
	TraitListening,
	TraitTrust,
	TraitFollowUp,
	TraitClosing,
	TraitRelationship,
}

// Ratings is one lesson attempt's complete assessed performance, one value
// per trait, each in [0,100].
type Ratings struct {
	Empathy      float64 `json:"empathy"`
	Listening    float64 `json:"listening"`
	Trust        float64 `json:"trust"`
	FollowUp     float64 `json:"followUp"`
	Closing      float64 `json:"closing"`
	Relationship float64 `json:"relationship"`
}

// PartialRatings is what the upstream grader actually hands us: it may omit
// traits entirely, and values may be out of range.
type PartialRatings map[Trait]float64

// PartialFromMap converts raw grader output keyed by trait name, dropping
// any keys that are not known traits.
func PartialFromMap(raw map[string]float64) PartialRatings {
	if len(raw) == 0 {
		return nil
	}
	partial := make(PartialRatings, len(raw))
	for _, trait := range Traits {
		if v, ok := raw[string(trait)]; ok {
			partial[trait] = v
		}
	}
	return partial
}

// Get returns the rating for a trait.
func (r Ratings) Get(trait Trait) float64 {
	switch trait {
	case TraitEmpathy:
		return r.Empathy
	case TraitListening:
		return r.Listening
	case TraitTrust:
		return r.Trust
	case TraitFollowUp:
		return r.FollowUp
	case TraitClosing:
		return r.Closing
	case TraitRelationship:
		return r.Relationship
	}
	return 0
}

// Set overwrites the rating for a trait.
func (r *Ratings) Set(trait Trait, value float64) {
	switch trait {
	case TraitEmpathy:
		r.Empathy = value
	case TraitListening:
		r.Listening = value
	case TraitTrust:
		r.Trust = value
	case TraitFollowUp:
		r.FollowUp = value
	case TraitClosing:
		r.Closing = value
	case TraitRelationship:
		r.Relationship = value
	}
}

// ClampRatings normalizes a possibly partial, possibly out-of-range set of
// grader ratings into a complete record. Missing traits default to 0 and
// every value is clamped to [0,100]. Applying it twice is a no-op.
func ClampRatings(partial PartialRatings) Ratings {
	var out Ratings
	for _, trait := range Traits {
		out.Set(trait, ClampScore(partial[trait]))
	}
	return out
}

// ClampScore bounds a trait score to the [0,100] scale.
func ClampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
