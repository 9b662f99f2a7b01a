package util

import (
	"fmt"
	"io"
	"sort"
	"time"

	"event-finder/finder"
	"event-finder/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// UnknownDateLabel is the bucket for events whose date cannot be read.
const UnknownDateLabel = "Date TBA"

// DayCount is the number of events starting on one day.
type DayCount struct {
	Label string
	Count int
}

// EventsPerDay buckets events by normalized start day, earliest first. Events
// with an unreadable date land in a trailing UnknownDateLabel bucket.
func EventsPerDay(events []models.EventRecord, dates *finder.DateNormalizer) []DayCount {
	now := dates.Now()
	counts := make(map[time.Time]int)
	unknown := 0

	for _, event := range events {
		at, ok := dates.Normalize(event.StartDate(), event.When(), now)
		if !ok {
			unknown++
			continue
		}
		y, m, d := at.Date()
		counts[time.Date(y, m, d, 0, 0, 0, 0, dates.Location())]++
	}

	days := make([]time.Time, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make([]DayCount, 0, len(days)+1)
	for _, day := range days {
		out = append(out, DayCount{Label: day.Format("Mon, Jan 2"), Count: counts[day]})
	}
	if unknown > 0 {
		out = append(out, DayCount{Label: UnknownDateLabel, Count: unknown})
	}
	return out
}

// PlotEventsPerDay renders a bar chart of events per day for city into w.
func PlotEventsPerDay(w io.Writer, city string, events []models.EventRecord, dates *finder.DateNormalizer) error {
	buckets := EventsPerDay(events, dates)

	labels := make([]string, len(buckets))
	items := make([]opts.BarData, len(buckets))
	for i, bucket := range buckets {
		labels[i] = bucket.Label
		items[i] = opts.BarData{Value: bucket.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Events in " + city,
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Events in " + city,
			Subtitle: finder.CountLabel(len(events)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).AddSeries("Events", items,
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Position: "top",
		}),
	)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
