// Command volstat opens a configured block store and prints aggregate and
// per-volume statistics. It never appends or flushes, but a missing volume
// or meta file is created on open. It is a developer inspection tool
// for this module, analogous to bbolt's own inspection binary, not part
// of the database's CLI/API surface.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chronoblock/tscore/internal/blockstore"
	"github.com/chronoblock/tscore/internal/config"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (defaults if omitted)")
	flag.Parse()

	cfg := config.LoadOrDefault(*configPath)

	volumes := make([]blockstore.Volume, cfg.Storage.VolumeCount)
	capacities := make([]uint32, cfg.Storage.VolumeCount)
	for i := range volumes {
		capacities[i] = cfg.Storage.VolumeCapacity
		fv, err := blockstore.OpenFileVolume(cfg.VolumePath(i), cfg.Storage.VolumeCapacity, 0)
		if err != nil {
			log.Fatalf("open volume %d: %v", i, err)
		}
		if cfg.IsColdVolume(i) {
			volumes[i] = blockstore.NewColdCodec(fv)
		} else {
			volumes[i] = fv
		}
	}

	meta, err := blockstore.OpenFileMetaVolume(cfg.MetaPath(), cfg.Storage.VolumeCount, capacities)
	if err != nil {
		log.Fatalf("open meta volume: %v", err)
	}

	store, err := blockstore.NewFileBlockStore(volumes, meta)
	if err != nil {
		log.Fatalf("open block store: %v", err)
	}

	stats := store.Stats()
	fmt.Fprintf(os.Stdout, "instance: %s\n", store.InstanceID())
	fmt.Fprintf(os.Stdout, "aggregate: capacity=%d nblocks=%d generation=%d block_size=%d\n",
		stats.Capacity, stats.NBlocks, stats.Generation, stats.BlockSize)
	fmt.Fprintln(os.Stdout, "per-volume:")

	volStats := store.VolumeStats()
	for i := 0; i < cfg.Storage.VolumeCount; i++ {
		name := fmt.Sprintf("volume-%d", i)
		vs, ok := volStats[name]
		if !ok {
			continue
		}
		cold := ""
		if cfg.IsColdVolume(i) {
			cold = " (cold)"
		}
		fmt.Fprintf(os.Stdout, "  %-12s capacity=%-10d nblocks=%-10d generation=%-6d%s\n",
			name, vs.Capacity, vs.NBlocks, vs.Generation, cold)
	}
}
