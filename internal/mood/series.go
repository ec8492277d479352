package mood

import (
	"sort"
	"time"
)

// Point is a single charted observation derived from one journal entry.
type Point struct {
	Date  time.Time `json:"date"`
	Label Label     `json:"label"`
	Score float64   `json:"score"`
}

// Series is a rectangular, date-aligned score matrix ready for charting.
// Every charted label has a row whose positions correspond 1:1 with Dates;
// nil marks "no observation", which is distinct from a genuine zero score
// so that gap-spanning line interpolation stays visually honest.
type Series struct {
	Dates  []string             `json:"dates"`
	Series map[Label][]*float64 `json:"series"`
}

// Aggregate reshapes per-entry observations into a dense per-label series.
// Input must be ordered ascending by creation time; when one label occurs
// twice on the same calendar day the later point wins. Unknown-labeled
// points contribute their date to the axis but are not charted.
func Aggregate(points []Point) Series {
	seen := make(map[string]struct{}, len(points))
	dates := make([]string, 0, len(points))
	for _, p := range points {
		day := p.Date.UTC().Format(time.DateOnly)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		dates = append(dates, day)
	}
	sort.Strings(dates)

	index := make(map[string]int, len(dates))
	for i, day := range dates {
		index[day] = i
	}

	series := make(map[Label][]*float64, len(ChartedLabels))
	for _, label := range ChartedLabels {
		series[label] = make([]*float64, len(dates))
	}

	for _, p := range points {
		row, ok := series[p.Label]
		if !ok {
			continue
		}
		score := p.Score
		row[index[p.Date.UTC().Format(time.DateOnly)]] = &score
	}

	return Series{Dates: dates, Series: series}
}
