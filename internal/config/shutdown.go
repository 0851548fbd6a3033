package config

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

var shuttingDown atomic.Bool

// StartListeningForShutdownSignal flips the shutdown flag on SIGINT or
// SIGTERM so load balancers see the instance drain before the HTTP server
// stops accepting connections.
func StartListeningForShutdownSignal() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-signals
		shuttingDown.Store(true)
	}()
}

func IsShuttingDown() bool {
	return shuttingDown.Load()
}
