package ingest

import (
	"time"

	"go.uber.org/zap"

	"skyroam/internal/config"
	"skyroam/internal/geo"
	"skyroam/internal/logger"
	"skyroam/internal/world"
)

// Chunks per BatchLoaded message.
const batchSize = 4

// How often progress is pushed during the parse passes, in elements.
// The producer samples its own byte counter; there is no monitor
// thread.
const progressEvery = 65536

// Loader is the ingestion producer. It owns the message channel and
// runs the whole pipeline on one worker goroutine: parse nodes, sort,
// parse ways, mesh per chunk, stream batches. It never waits on the
// consumer beyond the channel buffer.
type Loader struct {
	cfg      *config.Config
	proj     geo.Projector
	layout   world.Layout
	messages chan world.LoaderMessage
}

// NewLoader creates a loader for the configured map.
func NewLoader(cfg *config.Config) *Loader {
	return &Loader{
		cfg:  cfg,
		proj: geo.NewProjector(cfg.Map.OriginLat, cfg.Map.OriginLon),
		layout: world.Layout{
			Size:          cfg.World.Size,
			ChunksPerAxis: cfg.World.ChunksPerAxis,
			CellSize:      cfg.World.GridCellSize,
		},
		messages: make(chan world.LoaderMessage, 256),
	}
}

// Messages returns the stream the consumer drains. The channel closes
// after the Done message.
func (l *Loader) Messages() <-chan world.LoaderMessage {
	return l.messages
}

// Run executes the pipeline to completion. Call on a dedicated
// goroutine; every outcome, including source errors, ends with Done.
func (l *Loader) Run() {
	defer close(l.messages)
	start := time.Now()

	src, err := OpenSource(l.cfg.Map.Path)
	if err != nil {
		l.failWithFallback(err)
		return
	}

	nodes, err := l.readNodes(src)
	if err != nil {
		l.failWithFallback(err)
		return
	}

	buckets, err := l.readWays(src, nodes)
	if err != nil {
		l.failWithFallback(err)
		return
	}

	l.meshAndStream(buckets)

	logger.Info("map ingested",
		zap.Int("nodes", nodes.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)

	l.sendProgress(1.0)
	l.send(world.DoneMessage{})
}

// readNodes runs the first parse pass, projecting every node into the
// table. Progress covers 0..0.5.
func (l *Loader) readNodes(src Source) (*NodeTable, error) {
	l.send(world.StatusMessage{Text: "Reading nodes..."})

	nodes := NewNodeTable()
	count := 0
	err := src.Scan(func(n Node) {
		x, z := l.proj.ProjectPoint(n.Point)
		nodes.Add(n.ID, x, z)
		count++
		if count%progressEvery == 0 {
			l.sendProgress(float32(src.Progress()) * 0.5)
		}
	}, nil)
	if err != nil {
		return nil, err
	}

	l.send(world.StatusMessage{Text: "Sorting..."})
	l.sendProgress(0.52)
	nodes.Sort()

	logger.Debug("node pass complete", zap.Int("nodes", nodes.Len()))
	return nodes, nil
}

// readWays runs the second parse pass, resolving building footprints
// and bucketing them by chunk. Progress covers 0.55..0.95.
func (l *Loader) readWays(src Source, nodes *NodeTable) ([][]world.Footprint, error) {
	l.send(world.StatusMessage{Text: "Parsing ways..."})

	axis := l.cfg.World.ChunksPerAxis
	buckets := make([][]world.Footprint, axis*axis)

	var ways, buildings, skipped, outside int
	err := src.Scan(nil, func(w Way) {
		ways++
		if ways%progressEvery == 0 {
			l.sendProgress(0.55 + float32(src.Progress())*0.40)
		}

		if _, ok := w.Tags["building"]; !ok {
			return
		}
		fp, ok := world.BuildFootprint(w.ID, w.NodeIDs, w.Tags, nodes, l.cfg.Map.MetersPerLevel)
		if !ok {
			skipped++
			return
		}

		c := fp.Centroid()
		coord, ok := l.layout.CoordOf(c.X(), c.Y())
		if !ok {
			outside++
			return
		}

		idx := int(coord.Z)*axis + int(coord.X)
		buckets[idx] = append(buckets[idx], fp)
		buildings++
	})
	if err != nil {
		return nil, err
	}

	logger.Info("way pass complete",
		zap.Int("ways", ways),
		zap.Int("buildings", buildings),
		zap.Int("skipped", skipped),
		zap.Int("outside_world", outside),
	)
	return buckets, nil
}

// meshAndStream triangulates and extrudes every bucketed chunk and
// streams finished chunks in small batches. Progress covers 0.95..1.
func (l *Loader) meshAndStream(buckets [][]world.Footprint) {
	l.send(world.StatusMessage{Text: "Meshing..."})
	l.sendProgress(0.95)

	axis := l.cfg.World.ChunksPerAxis
	thickness := float32(l.cfg.Physics.WallThickness)
	total := len(buckets)

	streaming := false
	batch := make([]world.ChunkData, 0, batchSize)

	for idx, footprints := range buckets {
		if len(footprints) == 0 {
			continue
		}
		coord := world.ChunkCoord{X: int32(idx % axis), Z: int32(idx / axis)}

		acc := world.NewChunkAccumulator(coord)
		acc.AddGroundQuad(l.layout.Origin(coord), l.layout.ChunkSize())
		for _, fp := range footprints {
			acc.AppendFootprint(fp, thickness)
		}
		batch = append(batch, acc.Finish())

		if len(batch) >= batchSize {
			if !streaming {
				l.send(world.StatusMessage{Text: "Streaming..."})
				streaming = true
			}
			l.send(world.BatchMessage{Chunks: batch})
			l.sendProgress(0.95 + float32(idx)/float32(total)*0.05)
			batch = make([]world.ChunkData, 0, batchSize)
		}
	}

	if len(batch) > 0 {
		l.send(world.BatchMessage{Chunks: batch})
	}
}

// failWithFallback reports a source error through the status channel
// and degrades to a single ground-only chunk at the world center, so
// the client still reaches a playable state.
func (l *Loader) failWithFallback(err error) {
	logger.Error("map load failed", zap.Error(err))
	l.send(world.StatusMessage{Text: "Error: " + err.Error()})

	center := world.ChunkCoord{
		X: int32(l.cfg.World.ChunksPerAxis / 2),
		Z: int32(l.cfg.World.ChunksPerAxis / 2),
	}
	acc := world.NewChunkAccumulator(center)
	acc.AddGroundQuad(l.layout.Origin(center), l.layout.ChunkSize())
	l.send(world.BatchMessage{Chunks: []world.ChunkData{acc.Finish()}})

	l.sendProgress(1.0)
	l.send(world.DoneMessage{})
}

func (l *Loader) send(msg world.LoaderMessage) {
	l.messages <- msg
}

// sendProgress drops the update when the channel buffer is full.
// Progress is lossy bookkeeping; only status, batches and Done are
// reliable, so the producer never blocks on a stalled consumer for
// progress traffic.
func (l *Loader) sendProgress(fraction float32) {
	select {
	case l.messages <- world.ProgressMessage{Fraction: fraction}:
	default:
	}
}
