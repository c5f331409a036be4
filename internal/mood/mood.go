// Package mood classifies free-text journal entries into a coarse mood label.
package mood

import (
	"fmt"
	"strings"
)

// Label is the discrete mood assigned to an entry.
type Label string

const (
	Positive Label = "Positive"
	Negative Label = "Negative"
	Neutral  Label = "Neutral"
)

// ParseLabel accepts a bare label ("Positive") or its display form ("😊 Positive").
func ParseLabel(s string) (Label, error) {
	s = strings.TrimSpace(s)
	for _, l := range []Label{Positive, Negative, Neutral} {
		if strings.EqualFold(s, string(l)) || s == l.Display() {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown mood label %q", s)
}

// Emoji returns the face shown next to the label.
func (l Label) Emoji() string {
	switch l {
	case Positive:
		return "😊"
	case Negative:
		return "😞"
	default:
		return "😐"
	}
}

// Display returns the label prefixed with its emoji, e.g. "😊 Positive".
func (l Label) Display() string {
	return l.Emoji() + " " + string(l)
}

// Color returns a translucent background colour for the label:
// light green for positive, light red for negative, light yellow otherwise.
func (l Label) Color() string {
	switch l {
	case Positive:
		return "rgba(198, 239, 206, 0.8)"
	case Negative:
		return "rgba(255, 199, 206, 0.8)"
	default:
		return "rgba(255, 235, 156, 0.8)"
	}
}
