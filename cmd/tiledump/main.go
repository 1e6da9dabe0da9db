// SPDX-License-Identifier: MIT

// Command tiledump drives the tile-storage pipeline end to end: it loads a
// collision map and tile-type map from disk, optionally runs the boat-fit
// and water-body filter processors over them, and writes the results back
// out in the requested wire format.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/marsunpaisti/tilemap"
)

var logger *log.Logger

// dumpRegion is the full coordinate range a tiledump run sweeps over,
// matching the x/y bit widths of ContiguousIndexerConfig2/8 (spec §4.1).
var dumpRegion = tilemap.Bounds{MinX: 480, MinY: 0, MaxX: 4575, MaxY: 16383, Plane: 0}

// collisionBundle keeps a collision map's container, indexer, and the two
// facades built over them in sync, so the pipeline always reads and writes
// through the same underlying storage.
type collisionBundle struct {
	container tilemap.FreezeSaver
	indexer   tilemap.CoordIndexer
	writer    *tilemap.CollisionWriter
	view      *tilemap.CollisionMap
}

type tileTypeBundle struct {
	container tilemap.FreezeSaver
	indexer   tilemap.CoordIndexer
	writer    *tilemap.TileTypeWriter
	view      *tilemap.TileTypeMap
}

func main() {
	dir := flag.String("dir", "cache/tiledump", "directory holding collision/type-map files")
	fresh := flag.String("fresh", "n", "y to start from empty maps instead of loading existing files, n to load them")
	format := flag.String("format", "roaring", "wire format for output files: roaring, sparse, or wordset")
	boatSize := flag.Int("boat-size", 0, "if > 0, run the boat-fit processor with this edge length")
	waterThreshold := flag.Int("water-threshold", 5000, "minimum connected water-body size to preserve")
	pushgateway := flag.String("metrics-pushgateway", "", "if set, push run metrics to this Prometheus pushgateway URL")
	flag.Parse()

	logfile, err := createLogFile(*dir)
	if err != nil {
		log.Fatal(err)
	}
	defer logfile.Close()
	logger = log.New(logfile, "", log.Ldate|log.Ltime|log.LUTC|log.Lshortfile)

	// fatal logs err, prints it as one line on standard error and exits 1.
	fatal := func(err error) {
		logger.Print(err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()
	started := time.Now()

	collision, tileType, err := loadMaps(*dir, *fresh == "y")
	if err != nil {
		fatal(err)
	}

	if *boatSize > 0 {
		logger.Printf("running boat-fit processor, boat size %d, region %+v", *boatSize, dumpRegion)
		if err := applyBoatFit(ctx, collision, tileType, dumpRegion, *boatSize); err != nil {
			fatal(err)
		}
	}

	logger.Printf("running water-body flood-fill filter, threshold %d", *waterThreshold)
	if err := applyWaterFilter(ctx, tileType, dumpRegion, *waterThreshold); err != nil {
		fatal(err)
	}

	if err := saveMaps(*dir, *format, collision, tileType); err != nil {
		fatal(err)
	}

	elapsed := time.Since(started)
	logger.Printf("tiledump finished in %s", humanize.RelTime(started, started.Add(elapsed), "", ""))

	if *pushgateway != "" {
		if err := pushMetrics(*pushgateway, elapsed); err != nil {
			// Metrics delivery failure should not fail an otherwise
			// successful run.
			logger.Printf("pushing metrics to %s: %v", *pushgateway, err)
		}
	}
}

func loadMaps(dir string, fresh bool) (*collisionBundle, *tileTypeBundle, error) {
	collisionIdx, err := tilemap.NewContiguousIndexer(tilemap.ContiguousIndexerConfig2)
	if err != nil {
		return nil, nil, err
	}
	tileTypeIdx, err := tilemap.NewContiguousIndexer(tilemap.ContiguousIndexerConfig8)
	if err != nil {
		return nil, nil, err
	}

	collisionPath := filepath.Join(dir, "collision.wordset")
	tileTypePath := filepath.Join(dir, "tiletype.wordset")

	var collisionContainer, tileTypeContainer tilemap.FreezeSaver
	if fresh {
		wa, err := tilemap.NewSparseWordArray(1)
		if err != nil {
			return nil, nil, err
		}
		collisionContainer = wa
		ta, err := tilemap.NewSparseWordArray(8)
		if err != nil {
			return nil, nil, err
		}
		tileTypeContainer = ta
		logger.Print("starting from empty collision and tile-type maps")
	} else {
		collisionContainer, err = tilemap.Load(collisionPath, 1)
		if err != nil {
			return nil, nil, fmt.Errorf("loading %s: %w", collisionPath, err)
		}
		tileTypeContainer, err = tilemap.Load(tileTypePath, 8)
		if err != nil {
			return nil, nil, fmt.Errorf("loading %s: %w", tileTypePath, err)
		}
		logger.Printf("loaded %s and %s", collisionPath, tileTypePath)
	}

	collision := &collisionBundle{
		container: collisionContainer,
		indexer:   collisionIdx,
		writer:    tilemap.NewCollisionWriter(collisionContainer, collisionIdx, tilemap.Blocking),
		view:      tilemap.NewCollisionMap(collisionContainer, collisionIdx, tilemap.Blocking),
	}
	tileType := &tileTypeBundle{
		container: tileTypeContainer,
		indexer:   tileTypeIdx,
		writer:    tilemap.NewTileTypeWriter(tileTypeContainer, tileTypeIdx),
		view:      tilemap.NewTileTypeMap(tileTypeContainer, tileTypeIdx),
	}
	return collision, tileType, nil
}

// applyBoatFit runs the boat-fit processor and swaps collision's bundle over
// to the freshly derived result. FitBoat's out must be logically distinct
// from its collision/tileType inputs (spec §4.7 calls the result "a new
// collision map"): its workers read neighbor columns through collision while
// concurrently deriving pathable bits for other columns, so writing those
// derived bits back into the same container collision reads from would let a
// worker observe already-derived output instead of the pristine source. A
// fresh container sidesteps that read-after-write hazard entirely.
func applyBoatFit(ctx context.Context, collision *collisionBundle, tileType *tileTypeBundle, region tilemap.Bounds, boatSize int) error {
	outContainer, err := tilemap.NewSparseWordArray(1)
	if err != nil {
		return err
	}
	outWriter := tilemap.NewCollisionWriter(outContainer, collision.indexer, tilemap.Blocking)

	if err := tilemap.FitBoat(ctx, collision.view, tileType.view, region, boatSize, outWriter); err != nil {
		return err
	}

	collision.container = outContainer
	collision.writer = outWriter
	collision.view = tilemap.NewCollisionMap(outContainer, collision.indexer, tilemap.Blocking)
	return nil
}

// applyWaterFilter runs the water-body flood-fill filter and swaps
// tileType's bundle over to the freshly derived result. FilterWaterBodies's
// second pass only writes surviving tiles and skips filtered-out ones,
// relying on out starting zeroed everywhere a tile gets dropped; aliasing in
// and out would leave a filtered-out tile's prior value in place instead of
// zeroing it, so out must be a fresh container rather than tileType's own.
func applyWaterFilter(ctx context.Context, tileType *tileTypeBundle, region tilemap.Bounds, threshold int) error {
	outContainer, err := tilemap.NewSparseWordArray(8)
	if err != nil {
		return err
	}
	outWriter := tilemap.NewTileTypeWriter(outContainer, tileType.indexer)

	if err := tilemap.FilterWaterBodies(ctx, tileType.view, region, threshold, outWriter); err != nil {
		return err
	}

	tileType.container = outContainer
	tileType.writer = outWriter
	tileType.view = tilemap.NewTileTypeMap(outContainer, tileType.indexer)
	return nil
}

func saveMaps(dir, format string, collision *collisionBundle, tileType *tileTypeBundle) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}
	collisionPath := filepath.Join(dir, "collision."+format)
	tileTypePath := filepath.Join(dir, "tiletype."+format)

	if err := tilemap.Save(collisionPath, collision.container); err != nil {
		return fmt.Errorf("saving %s: %w", collisionPath, err)
	}
	if err := tilemap.Save(tileTypePath, tileType.container); err != nil {
		return fmt.Errorf("saving %s: %w", tileTypePath, err)
	}
	logger.Printf("saved %s and %s", collisionPath, tileTypePath)
	return nil
}

func pushMetrics(url string, elapsed time.Duration) error {
	duration := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tiledump_run_duration_seconds",
		Help: "Wall-clock duration of the most recent tiledump run.",
	})
	duration.Set(elapsed.Seconds())
	return push.New(url, "tiledump").Collector(duration).Push()
}

// Create a file for keeping logs. If the file already exists, its present
// content is preserved, and new log entries will get appended after the
// existing ones.
func createLogFile(dir string) (*os.File, error) {
	logdir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logdir, os.ModePerm); err != nil {
		return nil, err
	}
	logpath := filepath.Join(logdir, "tiledump.log")
	return os.OpenFile(logpath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}
