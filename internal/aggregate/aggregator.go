// aggregator.go - Groups classified events into one Bag per requestId.
// Bags come back in first-seen order so the HAR entry order is stable
// across runs over the same log.
package aggregate

import "github.com/bhecquet/seleniumRobot-sub007/internal/cdp"

// Aggregator is not safe for concurrent use; one instance serves one trace.
type Aggregator struct {
	bags  map[string]*Bag
	order []string
}

// New returns an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{bags: make(map[string]*Bag)}
}

// Ingest files ev into the bag for its requestId, creating the bag on first use.
// Events without a payload or requestId are ignored.
func (a *Aggregator) Ingest(ev cdp.Event) {
	if ev.Payload == nil || ev.RequestID == "" {
		return
	}
	bag, ok := a.bags[ev.RequestID]
	if !ok {
		bag = &Bag{RequestID: ev.RequestID}
		a.bags[ev.RequestID] = bag
		a.order = append(a.order, ev.RequestID)
	}
	bag.put(ev.Payload)
}

// IngestAll ingests events in order.
func (a *Aggregator) IngestAll(events []cdp.Event) {
	for _, ev := range events {
		a.Ingest(ev)
	}
}

// Bag returns the bag for requestID, or nil.
func (a *Aggregator) Bag(requestID string) *Bag {
	return a.bags[requestID]
}

// Len returns the number of distinct requestIds seen.
func (a *Aggregator) Len() int {
	return len(a.order)
}

// Bags returns every bag in first-seen requestId order.
func (a *Aggregator) Bags() []*Bag {
	out := make([]*Bag, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.bags[id])
	}
	return out
}
