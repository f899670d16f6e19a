package eventbus

import (
	"sync"
	"testing"
	"time"

	"combogrip/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []DomainEvent
}

func (r *recorder) handle(e DomainEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestPublishDeliversInOrder(t *testing.T) {
	b := New()
	defer b.Close()

	rec := &recorder{}
	b.Subscribe(EventCandidatesLoaded, rec.handle)

	for _, src := range []string{"a", "b", "c"} {
		b.Publish(CandidatesLoadedEvent{Source: src})
	}

	require.Eventually(t, func() bool { return rec.count() == 3 }, time.Second, 5*time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	var sources []string
	for _, e := range rec.events {
		sources = append(sources, e.(domain.CandidatesLoadedEvent).Source)
	}
	assert.Equal(t, []string{"a", "b", "c"}, sources)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	kept := &recorder{}
	dropped := &recorder{}
	b.Subscribe(EventError, kept.handle)
	unsubscribe := b.Subscribe(EventError, dropped.handle)
	unsubscribe()

	b.Publish(ErrorEvent{Message: "boom"})

	require.Eventually(t, func() bool { return kept.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, dropped.count())
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	b := New()
	defer b.Close()

	rec := &recorder{}
	b.Subscribe(EventScanCompleted, func(DomainEvent) { panic("handler failure") })
	b.Subscribe(EventScanCompleted, rec.handle)

	b.Publish(ScanCompletedEvent{CandidatesFound: 1})
	b.Publish(ScanCompletedEvent{CandidatesFound: 2})

	require.Eventually(t, func() bool { return rec.count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestPublishAfterCloseIsIgnored(t *testing.T) {
	b := New()
	rec := &recorder{}
	b.Subscribe(EventConfigSaved, rec.handle)
	b.Close()

	assert.NotPanics(t, func() { b.Publish(ConfigSavedEvent{}) })
	assert.NotPanics(t, b.Close)
	assert.Equal(t, 0, rec.count())
}
