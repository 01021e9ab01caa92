package authcore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/jenca-cloud/authcore/credstore"
)

func TestMetricsDisabledNoIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricLoginSuccess)

	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestMetricsEnabledIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)

	if got := m.Value(MetricLoginSuccess); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestMetricsConcurrentIncrementSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 32
	const perG = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				m.Inc(MetricVerifySuccess)
			}
		}()
	}
	wg.Wait()

	want := uint64(goroutines * perG)
	if got := m.Value(MetricVerifySuccess); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestMetricsHistogramBucketCorrectness(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})

	observations := []time.Duration{
		5 * time.Millisecond,
		10 * time.Millisecond,
		25 * time.Millisecond,
		50 * time.Millisecond,
		100 * time.Millisecond,
		250 * time.Millisecond,
		500 * time.Millisecond,
		700 * time.Millisecond,
	}

	for _, d := range observations {
		m.Observe(MetricVerifyLatency, d)
	}

	snap := m.TakeSnapshot()
	buckets := snap.Histograms[MetricVerifyLatency]
	if len(buckets) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(buckets))
	}

	for i, v := range buckets {
		if v != 1 {
			t.Fatalf("bucket %d expected 1, got %d", i, v)
		}
	}
}

func TestMetricsSnapshotConsistency(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginFailure)
	m.Inc(MetricLoginFailure)
	m.Observe(MetricVerifyLatency, 2*time.Millisecond)

	snap := m.TakeSnapshot()

	if snap.Counters[MetricLoginSuccess] != 1 {
		t.Fatalf("expected MetricLoginSuccess=1 got %d", snap.Counters[MetricLoginSuccess])
	}
	if snap.Counters[MetricLoginFailure] != 2 {
		t.Fatalf("expected MetricLoginFailure=2 got %d", snap.Counters[MetricLoginFailure])
	}
	if len(snap.Histograms[MetricVerifyLatency]) != 8 {
		t.Fatalf("expected histogram length 8")
	}
	if snap.Histograms[MetricVerifyLatency][0] != 1 {
		t.Fatalf("expected first histogram bucket=1 got %d", snap.Histograms[MetricVerifyLatency][0])
	}
}

func TestEngineCountsAuthOutcomes(t *testing.T) {
	cfg := engineTestConfig(t)
	cfg.Metrics.Enabled = true
	cfg.Metrics.EnableLatencyHistograms = true

	engine, _, done := newTestEngine(t, cfg)
	defer done()

	ctx := context.Background()
	if _, err := engine.Signup(ctx, "alice", "correct-password-123"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if _, err := engine.Signup(ctx, "alice", "correct-password-123"); !errors.Is(err, ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}

	login, err := engine.Login(ctx, "alice", "correct-password-123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	_, _ = engine.Login(ctx, "alice", "wrong-password-123")

	if _, err := engine.Verify(ctx, login.Token); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if err := engine.Logout(ctx, login.Token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	_, _ = engine.Verify(ctx, login.Token)

	snap := engine.MetricsSnapshot()

	expect := map[MetricID]uint64{
		MetricSignupSuccess:  1,
		MetricSignupConflict: 1,
		MetricLoginSuccess:   1,
		MetricLoginFailure:   1,
		MetricTokenIssued:    1,
		MetricVerifySuccess:  1,
		MetricVerifyRevoked:  1,
		MetricLogout:         1,
	}
	for id, want := range expect {
		if got := snap.Counters[id]; got != want {
			t.Fatalf("metric %d: expected %d, got %d", id, want, got)
		}
	}

	var observed uint64
	for _, v := range snap.Histograms[MetricVerifyLatency] {
		observed += v
	}
	if observed != 2 {
		t.Fatalf("expected 2 verify latency observations, got %d", observed)
	}
}

// slowRedisHook delays every command so verify latency is dominated by
// the revocation check.
type slowRedisHook struct {
	delay time.Duration
}

func (slowRedisHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h slowRedisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		time.Sleep(h.delay)
		return next(ctx, cmd)
	}
}

func (slowRedisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestVerifyLatencyHistogramRecordsElapsedTime(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	rdb.AddHook(slowRedisHook{delay: 15 * time.Millisecond})

	cfg := engineTestConfig(t)
	cfg.Metrics.Enabled = true
	cfg.Metrics.EnableLatencyHistograms = true

	engine, err := New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithCredentialStore(credstore.NewMemoryStore()).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	ctx := context.Background()
	if _, err := engine.Signup(ctx, "alice", "correct-password-123"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	login, err := engine.Login(ctx, "alice", "correct-password-123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := engine.Verify(ctx, login.Token); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	buckets := engine.MetricsSnapshot().Histograms[MetricVerifyLatency]
	if len(buckets) != 8 {
		t.Fatalf("expected 8 histogram buckets, got %d", len(buckets))
	}
	// The revocation check alone took >=15ms, so the sample must not
	// land in the <=5ms bucket.
	if buckets[0] != 0 {
		t.Fatalf("verify took >=15ms but %d samples landed in the <=5ms bucket", buckets[0])
	}
	var total uint64
	for _, v := range buckets {
		total += v
	}
	if total != 1 {
		t.Fatalf("expected exactly 1 latency observation, got %d", total)
	}
}

func TestMetricsSnapshotEmptyWhenDisabled(t *testing.T) {
	engine, _, done := newTestEngine(t, engineTestConfig(t))
	defer done()

	ctx := context.Background()
	if _, err := engine.Signup(ctx, "alice", "correct-password-123"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	snap := engine.MetricsSnapshot()
	for id, v := range snap.Counters {
		if v != 0 {
			t.Fatalf("expected zero counters when metrics disabled, metric %d = %d", id, v)
		}
	}
	if len(snap.Histograms) != 0 {
		t.Fatalf("expected no histograms when metrics disabled, got %d", len(snap.Histograms))
	}
}
