// Package synth turns one test run's performance log and step list into a
// HAR document.
//
// The run is a two-pass batch: every line is classified and filed into its
// request bag, then each bag becomes at most one entry. A bad line or a bag
// missing a field costs that line or entry only; Synthesize always returns a
// document.
package synth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bhecquet/seleniumRobot-sub007/internal/aggregate"
	"github.com/bhecquet/seleniumRobot-sub007/internal/builder"
	"github.com/bhecquet/seleniumRobot-sub007/internal/cdp"
	"github.com/bhecquet/seleniumRobot-sub007/internal/har"
	"github.com/bhecquet/seleniumRobot-sub007/internal/logging"
	"github.com/bhecquet/seleniumRobot-sub007/internal/metrics"
	"github.com/bhecquet/seleniumRobot-sub007/internal/redaction"
	"github.com/bhecquet/seleniumRobot-sub007/internal/timeline"
)

// DefaultCreator is written when Options.Creator is empty.
var DefaultCreator = har.Creator{Name: "perfhar", Version: "1.0"}

// Drop reasons reported to metrics and logs.
const (
	DropNoEvents         = "no_events"
	DropInvalidHTTP      = "invalid_http"
	DropInvalidWebSocket = "invalid_websocket"
	DropPanic            = "panic"
)

// Options configures one run. The zero value is usable.
type Options struct {
	// Logger receives skip and drop records; nil discards them.
	Logger *slog.Logger
	// Policy filters headers; nil means redaction.DefaultPolicy().
	Policy *redaction.Policy
	// Location renders startedDateTime values; nil means time.Local.
	Location *time.Location
	Creator  har.Creator
	// OnlyUsedPages lists only pages at least one entry resolved to.
	OnlyUsedPages bool
	// Metrics may be shared between concurrent runs; nil records nothing.
	Metrics *metrics.Collector
}

// Stats summarizes a run.
type Stats struct {
	LinesRead        int
	LinesSkipped     int
	Bags             int
	HTTPEntries      int
	WebSocketEntries int
	DroppedBags      int
	Pages            int
}

// Entries is the total number of entries built.
func (s Stats) Entries() int { return s.HTTPEntries + s.WebSocketEntries }

// Result is the document plus what it took to build it.
type Result struct {
	Har   *har.Har
	Stats Stats
}

// Synthesize builds the HAR for one run. Entries follow the order in which
// their requestId first appeared in lines; pages follow step start time.
func Synthesize(lines []cdp.RawLogLine, steps []timeline.Step, opts Options) Result {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	creator := opts.Creator
	if creator.Name == "" {
		creator = DefaultCreator
	}
	m := opts.Metrics

	stats := Stats{LinesRead: len(lines)}
	events := cdp.ClassifyAll(lines, logger, func(_ int, _ cdp.RawLogLine, err error) {
		stats.LinesSkipped++
		m.RecordSkip(cdp.SkipReason(err))
	})

	agg := aggregate.New()
	for _, ev := range events {
		m.RecordLine(ev.Kind().String())
		agg.Ingest(ev)
	}
	stats.Bags = agg.Len()

	idx := timeline.NewIndex(steps)
	b := builder.New(idx, opts.Policy, loc)
	doc := har.New(creator.Name, creator.Version)

	for _, bag := range agg.Bags() {
		entry, route, err := build(b, bag)
		if err != nil {
			stats.DroppedBags++
			reason := dropReason(route, err)
			m.RecordDrop(reason)
			if route == builder.RouteWebSocket {
				logger.Debug("dropping websocket entry", "request_id", bag.RequestID, "reason", reason, "error", err)
			} else {
				logger.Warn("dropping entry", "request_id", bag.RequestID, "reason", reason, "error", err)
			}
			continue
		}
		switch route {
		case builder.RouteHTTP:
			stats.HTTPEntries++
		case builder.RouteWebSocket:
			stats.WebSocketEntries++
			m.RecordMessages(entry.WebSocketMessages)
		default:
			stats.DroppedBags++
			m.RecordDrop(DropNoEvents)
			logger.Debug("no entry for request", "request_id", bag.RequestID)
			continue
		}
		m.RecordEntry(route.String())
		doc.Log.AddEntry(entry)
	}

	pages := idx.Pages()
	if opts.OnlyUsedPages {
		pages = idx.UsedPages()
	}
	for _, p := range pages {
		doc.Log.AddPage(har.Page{
			StartedDateTime: har.FormatDateTime(p.StartedAt, loc),
			ID:              p.ID,
			Title:           p.Title,
			PageTimings:     har.PageTimings{OnContentLoad: -1, OnLoad: -1},
		})
	}
	stats.Pages = len(doc.Log.Pages)

	logger.Info("har synthesized",
		"lines", stats.LinesRead,
		"skipped", stats.LinesSkipped,
		"entries", stats.Entries(),
		"dropped", stats.DroppedBags,
		"pages", stats.Pages)

	return Result{Har: doc, Stats: stats}
}

// errPanic wraps a value recovered while building one entry.
type errPanic struct{ v any }

func (e errPanic) Error() string { return fmt.Sprintf("panic building entry: %v", e.v) }

func build(b *builder.Builder, bag *aggregate.Bag) (entry har.Entry, route builder.Route, err error) {
	route = builder.RouteFor(bag)
	defer func() {
		if r := recover(); r != nil {
			err = errPanic{v: r}
		}
	}()
	entry, route, err = b.Build(bag)
	return entry, route, err
}

func dropReason(route builder.Route, err error) string {
	var p errPanic
	if errors.As(err, &p) {
		return DropPanic
	}
	if route == builder.RouteWebSocket {
		return DropInvalidWebSocket
	}
	return DropInvalidHTTP
}
