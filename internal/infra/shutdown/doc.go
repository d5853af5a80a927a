// Package shutdown coordinates graceful process teardown.
//
// Components register hooks during startup; on SIGINT or SIGTERM the
// hooks run in reverse registration order, mirroring the startup
// sequence:
//
//	h := shutdown.NewHandler(30 * time.Second)
//	h.OnShutdown(srv.Shutdown)
//	return h.Wait()
package shutdown
