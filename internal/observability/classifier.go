package observability

import (
	"context"

	"github.com/mood-journal/mood-journal/internal/mood"
)

// InstrumentedClassifier counts classifier outcomes per canonical label.
// A rising unknown share is the main signal that the upstream service is
// down or its vocabulary has drifted.
type InstrumentedClassifier struct {
	next    mood.Classifier
	metrics *Metrics
}

// InstrumentClassifier wraps a classifier with outcome counting.
func InstrumentClassifier(next mood.Classifier, metrics *Metrics) *InstrumentedClassifier {
	return &InstrumentedClassifier{next: next, metrics: metrics}
}

// Classify delegates to the wrapped classifier and records the result.
func (c *InstrumentedClassifier) Classify(ctx context.Context, text string) mood.Result {
	result := c.next.Classify(ctx, text)
	c.metrics.ObserveClassification(string(result.Label))
	return result
}

var _ mood.Classifier = (*InstrumentedClassifier)(nil)
