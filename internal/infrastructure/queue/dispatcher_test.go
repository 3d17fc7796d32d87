package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/identitylab/account-system/internal/core/ports"
)

type collectingSink struct {
	mu     sync.Mutex
	events []ports.AnalyticsEventInput
	done   chan struct{}
	expect int
}

func newCollectingSink(expect int) *collectingSink {
	return &collectingSink{done: make(chan struct{}), expect: expect}
}

func (s *collectingSink) Record(_ context.Context, event ports.AnalyticsEventInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) == s.expect {
		close(s.done)
	}
	return nil
}

func (s *collectingSink) wait(t *testing.T) []ports.AnalyticsEventInput {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.AnalyticsEventInput, len(s.events))
	copy(out, s.events)
	return out
}

func TestDispatcher_PerAccountOrdering(t *testing.T) {
	const n = 20
	sink := newCollectingSink(n)
	d := NewDispatcher(4, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	names := make([]string, n)
	for i := range names {
		names[i] = string(rune('a' + i%26))
	}
	for _, name := range names {
		d.Enqueue(ports.AnalyticsEventInput{AccountID: "acc_1", Name: name})
	}

	events := sink.wait(t)
	for i, event := range events {
		if event.Name != names[i] {
			t.Fatalf("event %d out of order: got %s want %s", i, event.Name, names[i])
		}
	}
}

func TestDispatcher_ShardIsStablePerAccount(t *testing.T) {
	d := NewDispatcher(8, newCollectingSink(1), zerolog.Nop())

	for _, id := range []string{"acc_1", "acc_2", "longer-account-identifier"} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			if d.shardIndex(id) != first {
				t.Fatalf("shard for %s not stable", id)
			}
		}
	}
}

func TestDispatcher_FansOutAcrossAccounts(t *testing.T) {
	const n = 12
	sink := newCollectingSink(n)
	d := NewDispatcher(3, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < n; i++ {
		d.Enqueue(ports.AnalyticsEventInput{
			AccountID: "acc_" + string(rune('a'+i)),
			Name:      "login",
		})
	}

	if got := len(sink.wait(t)); got != n {
		t.Fatalf("expected %d events, got %d", n, got)
	}
}
