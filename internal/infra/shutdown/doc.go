// Package shutdown coordinates graceful process termination.
//
// A Handler waits for SIGINT/SIGTERM, an explicit Trigger or context
// cancellation, then runs registered hooks in reverse registration order
// under one deadline.
//
//	h := shutdown.NewHandler(15 * time.Second)
//	h.OnShutdown("http", srv.Shutdown)
//	err := h.Wait(ctx)
package shutdown
