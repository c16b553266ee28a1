package metricskey

import "github.com/effective-security/metrics"

// Perf
var (
	// PerfVerify is perf metric
	PerfVerify = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_pgp_verify",
		Help:         "perf_pgp_verify provides the sample metrics of detached signature verification",
		RequiredTags: []string{"code"},
	}
)

// Stats
var (
	// StatsVerifyFailed is counter metric
	StatsVerifyFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_pgp_verify_failed",
		Help:         "stats_pgp_verify_failed provides the count of failed verifications by error kind",
		RequiredTags: []string{"kind"},
	}
)

// Metrics returns slice of metrics from this repo
var Metrics = []*metrics.Describe{
	&PerfVerify,
	&StatsVerifyFailed,
}
