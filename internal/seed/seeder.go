// internal/seed/seeder.go - Cache pre-seeding over a bbox and zoom range
package seed

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"mvtserve/internal/service"
)

// Options selects the tiles to pre-generate.
type Options struct {
	Tileset string
	MinZoom uint32
	MaxZoom uint32
	// Bounds is minLon, minLat, maxLon, maxLat.
	Bounds  [4]float64
	Workers int
}

type coord struct {
	x, y, z uint32
}

// Run generates every tile of the bbox/zoom range through the normal
// cache-aside path, so the configured cache strategy ends up populated.
// Individual tile failures are logged and counted; Run reports them once at
// the end instead of stopping the walk.
func Run(ctx context.Context, svc *service.MVTService, opts Options) error {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.MinZoom > opts.MaxZoom {
		return fmt.Errorf("min zoom %d exceeds max zoom %d", opts.MinZoom, opts.MaxZoom)
	}

	jobs := make(chan coord)
	var wg sync.WaitGroup
	var generated, failed atomic.Int64

	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tc := range jobs {
				if _, err := svc.Tile(ctx, opts.Tileset, tc.x, tc.y, tc.z); err != nil {
					failed.Add(1)
					log.Warnf("seed %s/%d/%d/%d failed: %v", opts.Tileset, tc.z, tc.x, tc.y, err)
					continue
				}
				generated.Add(1)
			}
		}()
	}

	err := walk(ctx, svc, opts, jobs)
	close(jobs)
	wg.Wait()

	log.Infof("seeding finished: %d tiles generated, %d failed", generated.Load(), failed.Load())
	if err != nil {
		return err
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d tiles failed to seed", n)
	}
	return nil
}

// walk enumerates the tile coordinates of the bbox per zoom level and feeds
// them to the workers.
func walk(ctx context.Context, svc *service.MVTService, opts Options, jobs chan<- coord) error {
	for z := opts.MinZoom; z <= opts.MaxZoom; z++ {
		// Top-left and bottom-right corners in pyramid rows.
		minX, minY := svc.Grid.TileAt(opts.Bounds[0], opts.Bounds[3], z)
		maxX, maxY := svc.Grid.TileAt(opts.Bounds[2], opts.Bounds[1], z)

		log.Infof("seeding zoom %d: columns %d-%d, rows %d-%d", z, minX, maxX, minY, maxY)
		for x := minX; x <= maxX; x++ {
			for y := minY; y <= maxY; y++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case jobs <- coord{x: x, y: y, z: z}:
				}
			}
		}
	}
	return nil
}
