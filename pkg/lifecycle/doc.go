// Package lifecycle provides server startup and process exit orchestration.
//
// The Service starts the static and metrics servers, prints the listen line
// once the static listener is bound and arms the exit Timer at that moment.
// The Timer is the only path to a timed process exit: it logs readiness,
// runs best-effort exit hooks and terminates the process with status 0.
package lifecycle
