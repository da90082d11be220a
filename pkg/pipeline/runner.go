package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mvidal/strata/pkg/cache"
	"github.com/mvidal/strata/pkg/classifier"
	"github.com/mvidal/strata/pkg/layers"
	"github.com/mvidal/strata/pkg/observability"
	"github.com/mvidal/strata/pkg/render"
	"github.com/mvidal/strata/pkg/source/erd"
	"github.com/mvidal/strata/pkg/source/manifest"
)

// Runner executes the pipeline with caching. It is stateless apart from
// the injected cache and logger, so one Runner can serve many runs.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner. A nil cache disables caching (NullCache) and
// a nil logger falls back to log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger, TTL: DefaultTTL}
}

// Execute runs the complete load → classify → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	loadStart := time.Now()
	set, isolated, err := r.Load(ctx, opts.Input, opts.Name)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Set = set
	result.Isolated = isolated
	result.Timing.Load = time.Since(loadStart)

	r.Logger.Info("loaded relations",
		"source", opts.Input,
		"relations", len(set.Relations),
		"duration", result.Timing.Load)
	if len(isolated) > 0 {
		r.Logger.Warn("entities without relations are not layered", "entities", isolated)
	}

	classifyStart := time.Now()
	layering, hit, err := r.Classify(ctx, set, opts.Observer)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	result.Layering = layering
	result.CacheHit = hit
	result.Timing.Classify = time.Since(classifyStart)

	r.Logger.Info("computed layers",
		"entities", layering.Stats.Entities,
		"layers", len(layering.Layers),
		"cache_hit", hit,
		"duration", result.Timing.Classify)

	if len(opts.Formats) > 0 {
		renderStart := time.Now()
		artifacts, err := r.Render(ctx, layering, set.Relations, opts.Formats)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		result.Artifacts = artifacts
		result.Timing.Render = time.Since(renderStart)

		r.Logger.Info("rendered artifacts",
			"formats", opts.Formats,
			"duration", result.Timing.Render)
	}

	return result, nil
}

// Load parses the relation source at path, choosing the loader by file
// extension. The returned isolated list names entities the source declares
// but no relation touches; only the ERD format can produce them.
func (r *Runner) Load(ctx context.Context, path, name string) (layers.RelationSet, []string, error) {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, format, path)

	set, isolated, err := loadSource(path, format)
	observability.Pipeline().OnLoadComplete(ctx, format, path, len(set.Relations), time.Since(start), err)
	if err != nil {
		return layers.RelationSet{}, nil, err
	}

	// An explicit name wins; sources without one get the file stem.
	if name != "" {
		set.Name = name
	} else if set.Name == "" {
		set.Name = stem(path)
	}
	return set, isolated, nil
}

func loadSource(path, format string) (layers.RelationSet, []string, error) {
	switch format {
	case "erd":
		doc, err := erd.ParseFile(path)
		if err != nil {
			return layers.RelationSet{}, nil, err
		}
		return doc.RelationSet(""), doc.Isolated(), nil
	case "toml":
		set, err := manifest.ParseFile(path)
		return set, nil, err
	case "json":
		set, err := layers.ReadRelationsFile(path)
		return set, nil, err
	default:
		return layers.RelationSet{}, nil, fmt.Errorf("%w: %q", ErrUnknownSourceFormat, path)
	}
}

// Classify computes the layering for a relation set, consulting the cache
// first. The bool result reports a cache hit.
func (r *Runner) Classify(ctx context.Context, set layers.RelationSet, obs classifier.Observer) (layers.Layering, bool, error) {
	canonical, err := layers.MarshalRelations(set)
	if err != nil {
		return layers.Layering{}, false, err
	}
	key := cache.LayeringKey(canonical)

	if data, hit, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	} else if hit {
		layering, err := layers.UnmarshalLayering(data)
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "layering")
			return layering, true, nil
		}
		// Corrupt entry: fall through and recompute.
		r.Logger.Warn("discarding corrupt cache entry", "key", key, "err", err)
		_ = r.Cache.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, "layering")

	start := time.Now()
	observability.Pipeline().OnClassifyStart(ctx, set.Name, len(set.Relations))

	var opts []classifier.Option
	if obs != nil {
		opts = append(opts, classifier.WithObserver(obs))
	}
	layering := layers.Classify(set, opts...)
	observability.Pipeline().OnClassifyComplete(ctx, set.Name, len(layering.Layers), time.Since(start), nil)

	if data, err := layers.MarshalLayering(layering); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layering", len(data))
		}
	}

	return layering, false, nil
}

// Render produces the requested artifacts for a layering.
func (r *Runner) Render(ctx context.Context, l layers.Layering, rels []layers.Relation, formats []string) (map[string][]byte, error) {
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, formats)

	artifacts := make(map[string][]byte, len(formats))
	var err error
	for _, format := range formats {
		var data []byte
		switch format {
		case FormatDOT:
			data = []byte(render.ToDOT(l, rels))
		case FormatSVG:
			data, err = render.RenderSVG(render.ToDOT(l, rels))
		case FormatPNG:
			data, err = render.RenderPNG(render.ToDOT(l, rels))
		case FormatJSON:
			data, err = layers.MarshalLayering(l)
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownOutputFormat, format)
		}
		if err != nil {
			break
		}
		artifacts[format] = data
	}

	observability.Pipeline().OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}
