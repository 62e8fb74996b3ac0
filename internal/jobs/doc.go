// Package jobs runs external tools as pipeline jobs.
//
// A Job describes one process invocation (binary, arguments and the artifact
// it produces). Runner.Start hands the job to a bounded worker Pool and
// returns at once; the job's merged stdout/stderr stream arrives on the sink
// as EventLog lines, followed by exactly one EventSucceeded or EventFailed.
// Runners never touch pipeline state: callers react to events.
package jobs
