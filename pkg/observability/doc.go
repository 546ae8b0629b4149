/*
Package observability turns graph build lifecycle events into Prometheus
metrics and structured log lines.

Both are exposed as builder hooks, so they compose with each other and with
caller hooks through domain.LifecycleHooks.Merge:

	m := observability.NewMetrics(prometheus.NewRegistry())
	b := builder.New(builder.WithHooks(m.Hooks().Merge(observability.LoggingHooks(logger))))
*/
package observability
