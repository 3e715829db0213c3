package routes

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mjperez2704/deli-back-office/internal/domain"
	testlog "github.com/mjperez2704/deli-back-office/internal/testutil"
)

type fakeGateway struct {
	estimateFn func(context.Context, domain.Point, domain.Point) (Estimate, error)
}

func (f *fakeGateway) Estimate(ctx context.Context, o, d domain.Point) (Estimate, error) {
	return f.estimateFn(ctx, o, d)
}

type counterStub struct{ n int64 }

func (c *counterStub) Inc() { atomic.AddInt64(&c.n, 1) }
func (c *counterStub) Count() int64 {
	return atomic.LoadInt64(&c.n)
}

func TestRetryingGateway_Estimate_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	rec := testlog.New()

	var calls int32
	next := &fakeGateway{
		estimateFn: func(context.Context, domain.Point, domain.Point) (Estimate, error) {
			switch atomic.AddInt32(&calls, 1) {
			case 1, 2:
				return Estimate{}, errors.New("503 service unavailable")
			default:
				return Estimate{Duration: 12 * time.Minute, DistanceKm: 4.2}, nil
			}
		},
	}
	ctr := &counterStub{}
	cfg := RetryConfig{
		MaxAttempts: 5,
		BaseDelay:   0,
		MaxDelay:    0,
	}
	g := NewRetryingGateway(next, rec.Logger(), ctr, cfg)
	if g == nil {
		t.Fatalf("expected non-nil gw")
	}
	got, err := g.Estimate(context.Background(), domain.Point{Lat: 19.43, Lng: -99.13}, domain.Point{Lat: 19.44, Lng: -99.14})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.DistanceKm != 4.2 {
		t.Fatalf("unexpected estimate: %#v", got)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	if ctr.Count() != 2 {
		t.Fatalf("expected 2 retries, got %d", ctr.Count())
	}
}

func TestRetryingGateway_Estimate_NoRetryOnCancel(t *testing.T) {
	t.Parallel()

	rec := testlog.New()

	var calls int32
	next := &fakeGateway{
		estimateFn: func(context.Context, domain.Point, domain.Point) (Estimate, error) {
			atomic.AddInt32(&calls, 1)
			return Estimate{}, context.Canceled
		},
	}

	ctr := &counterStub{}
	cfg := RetryConfig{MaxAttempts: 5, BaseDelay: 0, MaxDelay: 0}

	g := NewRetryingGateway(next, rec.Logger(), ctr, cfg)

	_, err := g.Estimate(context.Background(), domain.Point{}, domain.Point{})
	if err == nil {
		t.Fatal("expected error")
	}

	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if ctr.Count() != 0 {
		t.Fatalf("expected 0 retries, got %d", ctr.Count())
	}
}

func TestRetryingGateway_Estimate_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	rec := testlog.New()

	var calls int32
	next := &fakeGateway{
		estimateFn: func(context.Context, domain.Point, domain.Point) (Estimate, error) {
			atomic.AddInt32(&calls, 1)
			return Estimate{}, errors.New("timeout")
		},
	}

	ctr := &counterStub{}
	cfg := RetryConfig{MaxAttempts: 3, BaseDelay: 0, MaxDelay: 0}

	g := NewRetryingGateway(next, rec.Logger(), ctr, cfg)

	_, err := g.Estimate(context.Background(), domain.Point{}, domain.Point{})
	if err == nil {
		t.Fatal("expected error")
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	if ctr.Count() != 2 {
		t.Fatalf("expected 2 retries, got %d", ctr.Count())
	}
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	if got := backoff(100*time.Millisecond, time.Second, 1); got != 100*time.Millisecond {
		t.Fatalf("attempt 1: got %v", got)
	}
	if got := backoff(100*time.Millisecond, time.Second, 3); got != 400*time.Millisecond {
		t.Fatalf("attempt 3: got %v", got)
	}
	if got := backoff(100*time.Millisecond, time.Second, 10); got != time.Second {
		t.Fatalf("capped: got %v", got)
	}
}
