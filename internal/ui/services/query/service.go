package query

import (
	"context"
	"iter"
	"log"
	"slices"
	"time"

	"github.com/benbjohnson/clock"

	"combogrip/internal/domain"
	"combogrip/internal/ui/logic"
	"combogrip/internal/ui/services/diagnostics"
	"combogrip/internal/ui/services/events"
)

// Job is one recomputation of the result for an (items, query) snapshot.
// Run may be called on any goroutine; its result goes back through Deliver.
type Job[T any] struct {
	Seq   uint64
	Query string
	items []T
	ctx   context.Context
	svc   *Service[T]
}

// Run filters and selects. It returns nil when the job was superseded
// before or while running.
func (j *Job[T]) Run() domain.QueryResult[T] {
	if j.ctx.Err() != nil {
		return nil
	}
	return j.svc.compute(j.ctx, j.items, j.Query)
}

// Cancelled reports whether a newer job superseded this one
func (j *Job[T]) Cancelled() bool {
	return j.ctx.Err() != nil
}

// Service is the query engine: it owns the candidate set and the query,
// debounces input, recomputes results with latest-wins semantics and
// debounces the rendered output. It is not safe for concurrent use except
// for Job.Run.
type Service[T any] struct {
	state *State[T]
	bus   events.EventBus
	clock clock.Clock
	diag  *diagnostics.Service

	format     logic.Formatter[T]
	filter     logic.Filter[T]
	warnFilter bool
	strategy   logic.Strategy
	limit      int

	input  *Debouncer[string]
	render *Debouncer[domain.ItemList[T]]
	latest *Supersede
	ctx    context.Context
	stop   context.CancelFunc

	next     *Job[T]
	computed domain.QueryResult[T]
	rendered *domain.ItemList[T]
}

// NewService creates a query engine. clk may be nil for the wall clock and
// diag may be nil when diagnostics are not wanted.
func NewService[T any](bus events.EventBus, clk clock.Clock, diag *diagnostics.Service, opts Options[T]) *Service[T] {
	if bus == nil {
		bus = &events.NullBus{}
	}
	if clk == nil {
		clk = clock.New()
	}
	if diag == nil {
		diag = diagnostics.NewService("QueryEngine", bus)
	}
	limit := opts.MaximumDisplayedItems
	if limit <= 0 {
		limit = logic.DefaultMaximumDisplayedItems
	}
	format := opts.Format.OrDefault()
	filter, warn := opts.FilterBy.Resolve(format, opts.Textual)

	ctx, stop := context.WithCancel(context.Background())
	return &Service[T]{
		state:      &State[T]{Items: []T{}, Query: ""},
		bus:        bus,
		clock:      clk,
		diag:       diag,
		format:     format,
		filter:     filter,
		warnFilter: warn,
		strategy:   opts.Strategy,
		limit:      limit,
		input:      NewDebouncer[string](opts.InputDebounce),
		render:     NewDebouncer[domain.ItemList[T]](opts.RenderDebounce),
		latest:     &Supersede{},
		ctx:        ctx,
		stop:       stop,
	}
}

// SetItems replaces the candidate set and schedules a recomputation
func (s *Service[T]) SetItems(items []T) {
	s.state.Items = slices.Clone(items)
	if s.state.Items == nil {
		s.state.Items = []T{}
	}
	s.bus.Publish(ItemsReplacedEvent{Count: len(s.state.Items)})
	s.schedule()
}

// UpdateQuery feeds raw query text into the input debounce
func (s *Service[T]) UpdateQuery(query string) {
	now := s.clock.Now()
	s.input.Push(query, now)
	if s.input.Window() == 0 {
		s.advanceInput(now)
	}
}

// ResetQuery drops pending input and clears the query immediately
func (s *Service[T]) ResetQuery() {
	s.input.Cancel()
	if s.state.Query == "" {
		return
	}
	s.state.Query = ""
	s.bus.Publish(QueryChangedEvent{Query: ""})
	s.schedule()
}

// Tick advances both debounce stages to the current time
func (s *Service[T]) Tick() {
	now := s.clock.Now()
	s.advanceInput(now)
	s.advanceRender(now)
}

// Deadline reports the earliest time Tick has work to do
func (s *Service[T]) Deadline() (time.Time, bool) {
	in, inOK := s.input.Deadline()
	out, outOK := s.render.Deadline()
	switch {
	case inOK && outOK:
		if out.Before(in) {
			return out, true
		}
		return in, true
	case inOK:
		return in, true
	case outOK:
		return out, true
	}
	return time.Time{}, false
}

// NextJob hands out the newest unstarted recomputation, if any. Older
// unstarted jobs were already superseded and are never returned. The
// undeclared-text diagnostic fires with the first job handed out.
func (s *Service[T]) NextJob() *Job[T] {
	j := s.next
	s.next = nil
	if j != nil && s.warnFilter {
		s.diag.Warn(diagnostics.KeyUndeclaredTextFilter,
			"filtering non-textual candidates with the default formatted substring filter; declare the items textual or supply a filter or field selector")
	}
	return j
}

// Deliver publishes a finished job's result unless it is stale. It reports
// whether the result was accepted.
func (s *Service[T]) Deliver(job *Job[T], result domain.QueryResult[T]) bool {
	if job == nil || result == nil || job.Cancelled() || !s.latest.Accept(job.Seq) {
		return false
	}
	s.computed = result
	s.bus.Publish(ResultComputedEvent[T]{Seq: job.Seq, Query: job.Query, Result: result})

	switch r := result.(type) {
	case domain.ItemList[T]:
		now := s.clock.Now()
		s.render.Push(r, now)
		if s.render.Window() == 0 {
			s.advanceRender(now)
		}
	case domain.ExactMatch[T]:
		// Auto-selected; there is no list to show for this query
		s.render.Cancel()
	}
	return true
}

// Sync drains every stage immediately, running jobs on the calling goroutine
func (s *Service[T]) Sync() {
	if deadline, ok := s.input.Deadline(); ok {
		s.advanceInput(deadline)
	}
	for job := s.NextJob(); job != nil; job = s.NextJob() {
		s.Deliver(job, job.Run())
		if deadline, ok := s.input.Deadline(); ok {
			s.advanceInput(deadline)
		}
	}
	if deadline, ok := s.render.Deadline(); ok {
		s.advanceRender(deadline)
	}
}

// Close cancels any in-flight computation
func (s *Service[T]) Close() {
	s.latest.Stop()
	s.stop()
}

// Query returns the applied (debounced) query
func (s *Service[T]) Query() string {
	return s.state.Query
}

// Items returns the current candidate set
func (s *Service[T]) Items() []T {
	return s.state.Items
}

// Computed returns the newest accepted result
func (s *Service[T]) Computed() domain.QueryResult[T] {
	return s.computed
}

// Rendered returns the list currently exposed for rendering
func (s *Service[T]) Rendered() (domain.ItemList[T], bool) {
	if s.rendered == nil {
		return domain.ItemList[T]{}, false
	}
	return *s.rendered, true
}

// Matches returns every candidate matching the applied query, without the
// display limit
func (s *Service[T]) Matches() iter.Seq[T] {
	return s.filter(slices.Values(s.state.Items), s.state.Query)
}

// Format renders a candidate with the configured formatter
func (s *Service[T]) Format(v T) string {
	return s.format(v)
}

// Internal methods

func (s *Service[T]) advanceInput(now time.Time) {
	q, ok := s.input.Flush(now)
	if !ok || q == s.state.Query {
		return
	}
	s.state.Query = q
	s.bus.Publish(QueryChangedEvent{Query: q})
	s.schedule()
}

func (s *Service[T]) advanceRender(now time.Time) {
	list, ok := s.render.Flush(now)
	if !ok {
		return
	}
	s.rendered = &list
	s.bus.Publish(ResultRenderedEvent[T]{List: list})
}

func (s *Service[T]) schedule() {
	ctx, seq := s.latest.Next(s.ctx)
	s.next = &Job[T]{
		Seq:   seq,
		Query: s.state.Query,
		items: s.state.Items,
		ctx:   ctx,
		svc:   s,
	}
}

func (s *Service[T]) compute(ctx context.Context, items []T, query string) domain.QueryResult[T] {
	candidates := func(yield func(T) bool) {
		for _, item := range items {
			if ctx.Err() != nil || !yield(item) {
				return
			}
		}
	}
	result := logic.Select(s.strategy, query, s.filter(candidates, query), s.format, s.limit)
	if ctx.Err() != nil {
		log.Printf("QueryEngine: computation for %q superseded", query)
		return nil
	}
	return result
}
