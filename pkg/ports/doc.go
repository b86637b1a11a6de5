/*
Package ports defines the driven ports (interfaces) of the turing runtime.

These interfaces decouple running a machine from where its results go,
allowing the CLI, the HTTP server and the MCP server to share storage backends.

# Key Interfaces

  - RunStore: persists finished runs as domain.RunRecord values.
  - DistributedLocker: serializes work on one run ID across processes.
*/
package ports
