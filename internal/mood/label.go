// Package mood holds the canonical mood taxonomy, the classifier client
// and the chart aggregation logic.
package mood

import (
	"strings"

	"golang.org/x/text/cases"
)

// Label is one of the fixed mood categories the application reasons about.
type Label string

const (
	LabelJoy     Label = "joy"
	LabelSadness Label = "sadness"
	LabelAnger   Label = "anger"
	LabelFear    Label = "fear"
	LabelDisgust Label = "disgust"
	LabelNeutral Label = "neutral"
	// LabelUnknown is the sentinel used whenever classification cannot be trusted.
	LabelUnknown Label = "unknown"
)

// ChartedLabels lists the labels that appear on the mood chart, in display order.
// Unknown entries are deliberately left off the chart.
var ChartedLabels = []Label{
	LabelJoy,
	LabelSadness,
	LabelAnger,
	LabelFear,
	LabelDisgust,
	LabelNeutral,
}

var canonical = map[string]Label{
	"joy":     LabelJoy,
	"sadness": LabelSadness,
	"anger":   LabelAnger,
	"fear":    LabelFear,
	"disgust": LabelDisgust,
	"neutral": LabelNeutral,
	"unknown": LabelUnknown,
}

// Normalize maps an arbitrary classifier label onto the canonical taxonomy.
// The upstream vocabulary is not contractually stable, so this is the single
// seam isolating the application from it. Total: every input, including the
// empty string, yields a canonical label.
func Normalize(raw string) Label {
	folded := cases.Fold().String(strings.TrimSpace(raw))
	if label, ok := canonical[folded]; ok {
		return label
	}
	return LabelUnknown
}
