package mood

import (
	"strings"
)

const (
	// KeywordWeight is added (or subtracted) once per lexicon word present.
	KeywordWeight = 0.3

	// PositiveThreshold and NegativeThreshold bound the Neutral band.
	PositiveThreshold = 0.2
	NegativeThreshold = -0.2
)

// Scorer produces a base polarity in [-1, 1] for arbitrary text.
type Scorer interface {
	Polarity(text string) float64
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(text string) float64

// Polarity calls f(text).
func (f ScorerFunc) Polarity(text string) float64 {
	return f(text)
}

// Classifier combines a base sentiment scorer with keyword lexicons.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	scorer  Scorer
	lexicon Lexicon
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLexicon replaces the default lexicons. Words are lower-cased.
func WithLexicon(lex Lexicon) Option {
	return func(c *Classifier) {
		c.lexicon = Lexicon{
			Positive: lowerAll(lex.Positive),
			Negative: lowerAll(lex.Negative),
		}
	}
}

// WithScorer replaces the base sentiment scorer.
func WithScorer(s Scorer) Option {
	return func(c *Classifier) {
		c.scorer = s
	}
}

// New creates a Classifier backed by VADER and the default lexicons.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		lexicon: DefaultLexicon(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.scorer == nil {
		c.scorer = NewVaderScorer()
	}
	return c
}

// Score returns the lexicon-adjusted polarity, clamped to [-1, 1].
//
// The base score is adjusted by every positive word first, then every
// negative word, and clamped exactly once at the end. Clamping per word
// would change results for entries that hit many keywords.
func (c *Classifier) Score(text string) float64 {
	score := c.scorer.Polarity(text)
	lower := strings.ToLower(text)

	for _, w := range c.lexicon.Positive {
		if w != "" && strings.Contains(lower, w) {
			score += KeywordWeight
		}
	}
	for _, w := range c.lexicon.Negative {
		if w != "" && strings.Contains(lower, w) {
			score -= KeywordWeight
		}
	}

	return clamp(score)
}

// Classify returns the mood label for text.
func (c *Classifier) Classify(text string) Label {
	return LabelFor(c.Score(text))
}

// LabelFor maps a clamped score onto a label.
func LabelFor(score float64) Label {
	switch {
	case score > PositiveThreshold:
		return Positive
	case score < NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

func clamp(v float64) float64 {
	return max(-1, min(1, v))
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
