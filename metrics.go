package authcore

import (
	internalmetrics "github.com/jenca-cloud/authcore/internal/metrics"
)

// MetricID identifies a specific counter or histogram bucket in the
// in-process metrics system.
type MetricID = internalmetrics.MetricID

const (
	// MetricSignupSuccess is an exported constant or variable used by the credential engine.
	MetricSignupSuccess = MetricID(internalmetrics.MetricSignupSuccess)
	// MetricSignupConflict is an exported constant or variable used by the credential engine.
	MetricSignupConflict = MetricID(internalmetrics.MetricSignupConflict)
	// MetricSignupRejected is an exported constant or variable used by the credential engine.
	MetricSignupRejected = MetricID(internalmetrics.MetricSignupRejected)
	// MetricLoginSuccess is an exported constant or variable used by the credential engine.
	MetricLoginSuccess = MetricID(internalmetrics.MetricLoginSuccess)
	// MetricLoginFailure is an exported constant or variable used by the credential engine.
	MetricLoginFailure = MetricID(internalmetrics.MetricLoginFailure)
	// MetricVerifySuccess is an exported constant or variable used by the credential engine.
	MetricVerifySuccess = MetricID(internalmetrics.MetricVerifySuccess)
	// MetricVerifyExpired is an exported constant or variable used by the credential engine.
	MetricVerifyExpired = MetricID(internalmetrics.MetricVerifyExpired)
	// MetricVerifyRevoked is an exported constant or variable used by the credential engine.
	MetricVerifyRevoked = MetricID(internalmetrics.MetricVerifyRevoked)
	// MetricVerifyMalformed is an exported constant or variable used by the credential engine.
	MetricVerifyMalformed = MetricID(internalmetrics.MetricVerifyMalformed)
	// MetricVerifyBadSignature is an exported constant or variable used by the credential engine.
	MetricVerifyBadSignature = MetricID(internalmetrics.MetricVerifyBadSignature)
	// MetricLogout is an exported constant or variable used by the credential engine.
	MetricLogout = MetricID(internalmetrics.MetricLogout)
	// MetricLogoutNoop is an exported constant or variable used by the credential engine.
	MetricLogoutNoop = MetricID(internalmetrics.MetricLogoutNoop)
	// MetricTokenIssued is an exported constant or variable used by the credential engine.
	MetricTokenIssued = MetricID(internalmetrics.MetricTokenIssued)
	// MetricAccountRevoked is an exported constant or variable used by the credential engine.
	MetricAccountRevoked = MetricID(internalmetrics.MetricAccountRevoked)
	// MetricPasswordRehashed is an exported constant or variable used by the credential engine.
	MetricPasswordRehashed = MetricID(internalmetrics.MetricPasswordRehashed)
	// MetricStorageUnavailable is an exported constant or variable used by the credential engine.
	MetricStorageUnavailable = MetricID(internalmetrics.MetricStorageUnavailable)
	// MetricVerifyLatency is an exported constant or variable used by the credential engine.
	MetricVerifyLatency = MetricID(internalmetrics.MetricVerifyLatency)

	metricIDCount = internalmetrics.MetricIDCount
)

// Metrics holds atomic counters and optional latency histograms.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time deep copy of all metrics.
type MetricsSnapshot = internalmetrics.Snapshot

// NewMetrics creates a new [Metrics] instance configured by the given
// [MetricsConfig]. When Enabled is false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return internalmetrics.New(internalmetrics.Config{
		Enabled:       cfg.Enabled,
		EnableLatency: cfg.EnableLatencyHistograms,
	})
}
