// Package convert moves chunks between storage versions: decode with the
// source codec, translate the palette, encode with the target codec.
package convert

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"go.uber.org/zap"

	"github.com/richgrov/worldcodec/blocks"
	"github.com/richgrov/worldcodec/format"
	"github.com/richgrov/worldcodec/internal/log"
	"github.com/richgrov/worldcodec/internal/metrics"
	"github.com/richgrov/worldcodec/level"
	"github.com/richgrov/worldcodec/translate"
)

// Stages a chunk can fail in.
const (
	StageRead      = "read"
	StageDecode    = "decode"
	StageTranslate = "translate"
	StageEncode    = "encode"
	StageWrite     = "write"
)

type Converter struct {
	Registry *format.Registry
	// Resolver supplies translators. Nil keeps palettes as decoded.
	Resolver format.Resolver
	// Workers is the number of chunks converted at once, at least 1.
	Workers int
}

// Failure is one chunk that could not be converted. Other chunks are not
// affected by it.
type Failure struct {
	Pos   level.ChunkPos
	Stage string
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("chunk %s: %s: %v", f.Pos, f.Stage, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

type Report struct {
	Source    string
	Target    string
	Converted int
	Failed    []Failure
	// Latency of converting one chunk in microseconds, read and write
	// excluded.
	Latency *hdrhistogram.Histogram
}

type chunkJob struct {
	pos  level.ChunkPos
	data []byte
}

type chunkResult struct {
	pos     level.ChunkPos
	data    []byte
	stage   string
	err     error
	elapsed time.Duration
}

// dataVersionSetter is implemented by codec extras that store the version a
// chunk was saved with.
type dataVersionSetter interface {
	SetDataVersion(version int) error
}

// ConvertRegion converts every chunk of src from the source version to the
// target version and writes it to dst. Chunks failing any stage are listed
// in the report; the returned error is reserved for problems affecting the
// whole region, like a version without a codec or a cancelled context.
func (c *Converter) ConvertRegion(ctx context.Context, src, dst *level.Region, source, target format.Key) (Report, error) {
	sourceCodec, err := c.Registry.Resolve(source)
	if err != nil {
		return Report{}, err
	}
	targetCodec, err := c.Registry.Resolve(target)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Source:  sourceCodec.Name(),
		Target:  targetCodec.Name(),
		Latency: hdrhistogram.New(1, time.Minute.Microseconds(), 3),
	}
	logger := log.Logger().With(
		zap.Int32("region_x", src.Pos.X),
		zap.Int32("region_z", src.Pos.Z),
		zap.String("source", report.Source),
		zap.String("target", report.Target),
	)

	positions := src.Chunks()
	workers := max(c.Workers, 1)
	jobs := make(chan chunkJob)
	results := make(chan chunkResult, workers)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobs)

		for _, pos := range positions {
			data, err := src.ReadChunk(pos)
			if err != nil {
				select {
				case results <- chunkResult{pos: pos, stage: StageRead, err: err}:
					continue
				case <-ctx.Done():
					return
				}
			}

			select {
			case jobs <- chunkJob{pos: pos, data: data}:
			case <-ctx.Done():
				return
			}
		}
	}()

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				start := time.Now()
				data, stage, err := c.convertChunk(job.data, sourceCodec, targetCodec, source, target)
				results <- chunkResult{pos: job.pos, data: data, stage: stage, err: err, elapsed: time.Since(start)}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for result := range results {
		if result.elapsed > 0 {
			if err := recordLatency(report.Latency, result.elapsed); err != nil {
				logger.Debug("latency not recorded", zap.Stringer("chunk", result.pos), zap.Error(err))
			}
		}

		if result.err == nil {
			result.err = dst.WriteChunk(result.pos, result.data)
			result.stage = StageWrite
		}

		if result.err != nil {
			metrics.ChunksFailedCounter.WithLabelValues(result.stage).Inc()
			logger.Warn("chunk not converted",
				zap.Stringer("chunk", result.pos),
				zap.String("stage", result.stage),
				zap.Error(result.err),
			)
			report.Failed = append(report.Failed, Failure{Pos: result.pos, Stage: result.stage, Err: result.err})
			continue
		}
		report.Converted++
	}

	sort.Slice(report.Failed, func(i, j int) bool {
		a, b := report.Failed[i].Pos, report.Failed[j].Pos
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X < b.X
	})

	logger.Info("region converted",
		zap.Int("converted", report.Converted),
		zap.Int("failed", len(report.Failed)),
	)

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// recordLatency adds d to h in microseconds. Durations outside the range h
// tracks count as its nearest bound.
func recordLatency(h *hdrhistogram.Histogram, d time.Duration) error {
	us := min(max(d.Microseconds(), h.LowestTrackableValue()), h.HighestTrackableValue())
	return h.RecordValue(us)
}

func (c *Converter) convertChunk(data []byte, sourceCodec, targetCodec *format.Codec, source, target format.Key) ([]byte, string, error) {
	start := time.Now()
	chunk, palette, err := sourceCodec.Decode(data)
	if err != nil {
		return nil, StageDecode, err
	}
	metrics.DecodeSeconds.WithLabelValues(sourceCodec.Name()).Observe(time.Since(start).Seconds())
	metrics.ChunksDecodedCounter.WithLabelValues(sourceCodec.Name()).Inc()

	if c.Resolver != nil {
		palette, err = c.translate(chunk, palette, data, sourceCodec, targetCodec, source, target)
		if err != nil {
			return nil, StageTranslate, err
		}
	}

	if setter, ok := chunk.Extra.(dataVersionSetter); ok && source.Version.Compare(target.Version) != 0 {
		if err := setter.SetDataVersion(target.Version.Major()); err != nil {
			return nil, StageEncode, err
		}
	}

	out, err := targetCodec.Encode(chunk, palette)
	if err != nil {
		return nil, StageEncode, err
	}
	metrics.ChunksEncodedCounter.WithLabelValues(targetCodec.Name()).Inc()

	return out, "", nil
}

// translate moves the palette through the universal namespace into the
// target version and remaps the chunk's blocks to match.
func (c *Converter) translate(chunk *level.Chunk, palette blocks.Palette, data []byte, sourceCodec, targetCodec *format.Codec, source, target format.Key) (blocks.Palette, error) {
	from, err := sourceCodec.Translator(c.Resolver, source, data)
	if err != nil {
		return blocks.Palette{}, err
	}
	to, err := targetCodec.Translator(c.Resolver, target, nil)
	if err != nil {
		return blocks.Palette{}, err
	}

	universal, toUniversal, err := translate.TranslatePalette(from, palette, true)
	if err != nil {
		return blocks.Palette{}, err
	}
	translated, fromUniversal, err := translate.TranslatePalette(to, universal, false)
	if err != nil {
		return blocks.Palette{}, err
	}

	chunk.Blocks.Map(func(id uint32) uint32 {
		return fromUniversal[toUniversal[id]]
	})
	chunk.Blocks.Narrow()
	return translated, nil
}

// InspectChunk decodes one raw chunk with the codec registered for key. A key
// without a version picks the codec from the version stored in the chunk.
func (c *Converter) InspectChunk(data []byte, key format.Key) (*level.Chunk, blocks.Palette, error) {
	var (
		codec *format.Codec
		err   error
	)
	if len(key.Version) == 0 {
		codec, _, err = c.Registry.Detect(key, data)
	} else {
		codec, err = c.Registry.Resolve(key)
	}
	if err != nil {
		return nil, blocks.Palette{}, err
	}
	return codec.Decode(data)
}
