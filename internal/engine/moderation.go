package engine

import (
	"math"
	"regexp"
	"strings"
)

// Severity labels the moderation outcome of one lesson attempt.
type Severity string

const (
	SeverityNormal    Severity = "normal"
	SeverityViolation Severity = "behavior_violation"
)

// Category tags attached to a violated assessment.
const (
	FlagProfanity  = "profanity"
	FlagHarassment = "harassment"
	FlagContempt   = "lesson_disrespect"
	FlagThreat     = "threatening_language"
)

const (
	// violationThreshold is the aggregate score at which an attempt trips
	// moderation without a zero-tolerance hit.
	violationThreshold = 0.35

	ratingMarkdownBase  = 20.0
	ratingMarkdownRange = 50.0
	xpPenaltyMin        = 10.0
	xpPenaltyMax        = 100.0
)

// CategoryHit is one classified category with its non-overlapping match count.
type CategoryHit struct {
	Tag           string
	Hits          int
	Weight        float64
	ZeroTolerance bool
}

// Classifier scans a text blob and reports per-category hit counts. The
// default implementation is regex-driven; callers can substitute a keyword
// list or an ML model without touching the scoring logic.
type Classifier interface {
	Classify(text string) []CategoryHit
}

type patternCategory struct {
	tag           string
	weight        float64
	zeroTolerance bool
	patterns      []*regexp.Regexp
}

// RegexClassifier matches fixed per-category pattern lists against the
// transcript blob.
type RegexClassifier struct {
	categories []patternCategory
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, regexp.MustCompile(expr))
	}
	return out
}

// NewRegexClassifier builds the default classifier with the built-in
// profanity, harassment, lesson-contempt and threat pattern sets. Patterns
// are matched against a lower-cased blob, so they are written lower-case.
func NewRegexClassifier() *RegexClassifier {
	return &RegexClassifier{
		categories: []patternCategory{
			{
				tag:    FlagProfanity,
				weight: 0.12,
				patterns: compileAll(
					`\bf+u+c+k\w*\b`,
					`\bs+h+i+t+\w*\b`,
					`\bbullshit\b`,
					`\bbitch\w*\b`,
					`\basshole\w*\b`,
					`\bdickhead\b`,
					`\bpiss(ed)?\s+off\b`,
				),
			},
			{
				tag:    FlagHarassment,
				weight: 0.30,
				patterns: compileAll(
					`\byou('?re|\s+are)\s+(an?\s+)?(idiot|moron|imbecile|stupid|dumb|worthless|pathetic|useless)\b`,
					`\byou\s+(suck|disgust\s+me)\b`,
					`\bshut\s+(the\s+\w+\s+)?up\b`,
					`\bi\s+hate\s+you\b`,
					`\b(stupid|dumb)\s+(bot|ai|machine|robot)\b`,
					`\bloser\b`,
				),
			},
			{
				tag:    FlagContempt,
				weight: 0.25,
				patterns: compileAll(
					`\b(this|the)\s+(lesson|training|exercise|roleplay|course)\s+(is|sounds?|seems?)\s+(so\s+)?(stupid|dumb|garbage|trash|pointless|useless|worthless|a\s+joke)\b`,
					`\bwaste\s+of\s+(my\s+)?time\b`,
					`\bthis\s+is\s+(garbage|trash|pointless|useless|a\s+joke)\b`,
					`\bwho\s+cares\s+about\s+(this|sales|training)\b`,
					`\bi\s+refuse\s+to\s+(do|finish|complete)\s+this\b`,
					`\bnot\s+doing\s+this\s+(stupid|dumb)?\s*(lesson|exercise|roleplay)\b`,
				),
			},
			{
				tag:           FlagThreat,
				weight:        0.75,
				zeroTolerance: true,
				patterns: compileAll(
					`\b(i('?ll|\s+will|\s+am\s+going\s+to)\s+)(kill|hurt|beat|stab|shoot|strangle|destroy)\s+(you|him|her|them)\b`,
					`\byou('?re|\s+are)\s+(a\s+)?dead\b`,
					`\bwatch\s+your\s+back\b`,
					`\bi\s+know\s+where\s+you\s+live\b`,
					`\bi('?ll|\s+will)\s+make\s+you\s+(pay|regret|suffer)\b`,
				),
			},
		},
	}
}

// Classify counts non-overlapping matches per category across the blob.
func (c *RegexClassifier) Classify(text string) []CategoryHit {
	hits := make([]CategoryHit, 0, len(c.categories))
	for _, cat := range c.categories {
		count := 0
		for _, re := range cat.patterns {
			count += len(re.FindAllStringIndex(text, -1))
		}
		hits = append(hits, CategoryHit{
			Tag:           cat.tag,
			Hits:          count,
			Weight:        cat.weight,
			ZeroTolerance: cat.zeroTolerance,
		})
	}
	return hits
}

// Assessment is the outcome of moderating one lesson attempt. AdjustedXP and
// AdjustedRatings are only set when the attempt violated; otherwise the
// caller persists the grader's proposal untouched.
type Assessment struct {
	Violated        bool     `json:"violated"`
	Severity        Severity `json:"severity"`
	Score           float64  `json:"score"`
	Flags           []string `json:"flags"`
	AdjustedXP      *int     `json:"adjustedXpAwarded,omitempty"`
	AdjustedRatings *Ratings `json:"adjustedRatings,omitempty"`
}

// Moderator applies a Classifier's hit counts to the violation scoring rules.
type Moderator struct {
	classifier Classifier
}

// NewModerator wires a moderator around the given classifier. A nil
// classifier falls back to the built-in regex one.
func NewModerator(classifier Classifier) *Moderator {
	if classifier == nil {
		classifier = NewRegexClassifier()
	}
	return &Moderator{classifier: classifier}
}

var defaultModerator = NewModerator(nil)

// Assess runs the default moderator over one attempt's user transcript.
func Assess(userMessages []string, proposed PartialRatings, xpAwarded int) Assessment {
	return defaultModerator.Assess(userMessages, proposed, xpAwarded)
}

// Assess inspects the ordered user turns of one lesson attempt and decides
// whether the attempt is a behavior violation. Pure and deterministic.
// Silence cannot be penalized: a blank transcript short-circuits clean
// before any pattern is evaluated.
func (m *Moderator) Assess(userMessages []string, proposed PartialRatings, xpAwarded int) Assessment {
	blob := strings.ToLower(strings.TrimSpace(strings.Join(userMessages, "\n")))
	if blob == "" {
		return Assessment{Violated: false, Severity: SeverityNormal, Score: 0, Flags: []string{}}
	}

	var (
		score     float64
		totalHits int
		threatHit bool
		flags     = []string{}
	)
	for _, hit := range m.classifier.Classify(blob) {
		if hit.Hits == 0 {
			continue
		}
		score += float64(hit.Hits) * hit.Weight
		totalHits += hit.Hits
		flags = append(flags, hit.Tag)
		if hit.ZeroTolerance {
			threatHit = true
		}
	}

	// Repetition bonus: sustained abuse scores higher than a one-off.
	switch {
	case totalHits >= 4:
		score += 0.20
	case totalHits >= 2:
		score += 0.10
	}
	score = clampUnit(score)

	if !threatHit && score < violationThreshold {
		return Assessment{Violated: false, Severity: SeverityNormal, Score: score, Flags: flags}
	}

	normalized := clampUnit((score - violationThreshold) / (1 - violationThreshold))

	// Every supplied (or zero-defaulted) rating is marked down by the same
	// amount, floored at 0.
	markdown := ratingMarkdownBase + normalized*ratingMarkdownRange
	adjusted := ClampRatings(proposed)
	for _, trait := range Traits {
		adjusted.Set(trait, math.Max(0, adjusted.Get(trait)-markdown))
	}

	penalty := int(math.Round(math.Min(xpPenaltyMax, math.Max(xpPenaltyMin, xpPenaltyMin+normalized*90))))
	adjustedXP := -penalty

	return Assessment{
		Violated:        true,
		Severity:        SeverityViolation,
		Score:           score,
		Flags:           flags,
		AdjustedXP:      &adjustedXP,
		AdjustedRatings: &adjusted,
	}
}
