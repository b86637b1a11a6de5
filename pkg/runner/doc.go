/*
Package runner drives runs of a turing.Engine on behalf of the CLI and the servers.

It adds what the engine leaves out: presenting runs through a Handler (tape
pictures for people, JSON lines for scripts), tracing every step, persisting
records in a ports.RunStore, and running many tapes against one machine in
parallel.

# Usage

	r := runner.NewRunner(
		runner.WithHandler(runner.NewTextHandler(os.Stdout, true)),
		runner.WithStore(file.New("")),
		runner.WithTrace(true),
	)

	rec, err := r.Run(ctx, eng, []string{"1", "0", "1"})
*/
package runner
