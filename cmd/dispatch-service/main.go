package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mjperez2704/deli-back-office/internal/app"
	"github.com/mjperez2704/deli-back-office/internal/http/pprofserver"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startPprof()

	container := app.MustBuildContainer(ctx)
	app.MustRun(container)
}

// startPprof serves the debug endpoints on a separate port, guarded by basic
// auth when PPROF_USER is set and loopback-only otherwise.
func startPprof() {
	port := os.Getenv("PPROF_PORT")
	if port == "" {
		return
	}
	h := pprofserver.Handler(pprofserver.Config{
		User: os.Getenv("PPROF_USER"),
		Pass: os.Getenv("PPROF_PASS"),
	})
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%s", port), h); err != nil {
			log.Printf("pprof server error: %v", err)
		}
	}()
}
