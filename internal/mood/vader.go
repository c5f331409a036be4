package mood

import (
	"strings"

	"github.com/jonreiter/govader"
)

// VaderScorer scores text with the VADER sentiment model.
// Its compound score is already normalised to [-1, 1].
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer loads the VADER lexicon. Loading is comparatively slow,
// so build one scorer and share it.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Polarity returns VADER's compound score; blank text scores 0.
func (v *VaderScorer) Polarity(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return v.analyzer.PolarityScores(text).Compound
}
