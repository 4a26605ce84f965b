// Command eventwatch subscribes to a configured queue and logs block store
// lifecycle events (volume rotations, block appends) as they arrive. It is
// a developer inspection tool, the consumer-side counterpart to volstat's
// snapshot view, useful for watching a replica fleet's rotation behavior
// live without wiring a full monitoring stack.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/chronoblock/tscore/internal/blockstore"
	"github.com/chronoblock/tscore/internal/config"
	"github.com/chronoblock/tscore/internal/logging"
	"github.com/chronoblock/tscore/internal/queue"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (defaults if omitted)")
	flag.Parse()

	cfg := config.LoadOrDefault(*configPath)
	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		logger = logging.Global()
		logger.Warn("eventwatch: failed to build configured logger, using default", "error", err)
	}

	q, err := queue.NewQueue(cfg.Queue)
	if err != nil {
		logger.Fatal("eventwatch: failed to open queue", "error", err)
	}
	defer q.Close()

	sub := blockstore.NewEventSubscriber(q)
	sub.OnVolumeRotated = func(ev blockstore.VolumeRotated) {
		logger.Info("volume rotated",
			"instance_id", ev.InstanceID.String(),
			"volume", ev.Volume,
			"generation", ev.Generation)
	}
	sub.OnBlockAppended = func(ev blockstore.BlockAppended) {
		logger.Info("block appended",
			"instance_id", ev.InstanceID.String(),
			"addr", ev.Addr)
	}

	if err := sub.Subscribe(cfg.Queue.Subject); err != nil {
		logger.Fatal("eventwatch: failed to subscribe", "error", err)
	}
	logger.Info("eventwatch: listening", "subject", cfg.Queue.Subject, "queue_type", cfg.Queue.Type)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}
