package mood

// Lexicon holds the diary-specific trigger words that nudge the base score.
// Matching is substring containment on the lower-cased entry, so "awe" also
// matches inside "awesome".
type Lexicon struct {
	Positive []string
	Negative []string
}

// DefaultLexicon returns the built-in word lists.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Positive: []string{
			"yay", "happy", "awesome", "great", "amazing", "good", "love", "super",
			"excited", "won", "marks", "passed", "success", "awe", "awwe", "wow",
		},
		Negative: []string{
			"sad", "angry", "bad", "hate", "upset", "fail", "failed", "tired",
			"bored", "disappointed", "worst", "cry", "crying",
		},
	}
}
