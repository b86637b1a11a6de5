/*
Package observability exports run metrics to Prometheus.

Metrics are fed by the engine's lifecycle hooks, so any run started with
Metrics.Hooks is counted, whether it comes from the CLI, the HTTP server or
the MCP server.
*/
package observability
