package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/c4export/pkg/cache"
	"github.com/matzehuels/c4export/pkg/diagram"
	"github.com/matzehuels/c4export/pkg/errors"
	"github.com/matzehuels/c4export/pkg/observability"
)

// Key types reported to the cache hooks.
const (
	keyTypeExport  = "export"
	keyTypePreview = "preview"
)

// Runner encapsulates export execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store export results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Export runs the export with caching. The artifact is keyed by a hash of
// the canonical document and the options that change its bytes; the dated
// file name and the summary are recomputed on every call.
func (r *Runner) Export(ctx context.Context, doc diagram.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	docHash, err := documentHash(doc)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts())

	if !opts.Refresh {
		if data, ok := r.lookup(ctx, keyTypeExport, key); ok {
			pages, err := SelectPages(doc, opts.Pages)
			if err != nil {
				return nil, err
			}
			result := &Result{
				Data:         data,
				Filename:     opts.Filename(opts.Now()),
				DocumentHash: docHash,
				Summary:      summarizePages(pages, opts.Logger),
				CacheHit:     true,
			}
			r.Logger.Info("export served from cache",
				"file", result.Filename,
				"pages", result.Summary.PageCount(),
				"edges", result.Summary.Edges)
			return result, nil
		}
	}

	result, err := Export(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.DocumentHash = docHash
	r.store(ctx, keyTypeExport, key, result.Data, cache.TTLArtifact)

	r.Logger.Info("exported document",
		"file", result.Filename,
		"pages", result.Summary.PageCount(),
		"edges", result.Summary.Edges,
		"duplicates", result.Summary.Removed,
		"duration", result.Duration)
	return result, nil
}

// Preview renders one page with caching and returns the bytes and the
// rendered page name.
func (r *Runner) Preview(ctx context.Context, doc diagram.Document, opts PreviewOptions) ([]byte, string, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, "", err
	}
	ws, err := FindPage(doc, opts.Page)
	if err != nil {
		return nil, "", err
	}
	opts.Page = ws.Name

	docHash, err := documentHash(doc)
	if err != nil {
		return nil, "", err
	}
	key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts())
	if data, ok := r.lookup(ctx, keyTypePreview, key); ok {
		return data, ws.Name, nil
	}

	start := time.Now()
	data, name, err := Preview(ctx, doc, opts)
	if err != nil {
		return nil, "", err
	}
	r.store(ctx, keyTypePreview, key, data, cache.TTLPreview)
	r.Logger.Info("rendered preview",
		"page", name,
		"format", opts.Format,
		"bytes", len(data),
		"duration", time.Since(start))
	return data, name, nil
}

// lookup reads key from the cache. Backend errors are logged and treated as
// misses so a broken cache never fails an export.
func (r *Runner) lookup(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// documentHash hashes the canonical encoding of doc.
func documentHash(doc diagram.Document) (string, error) {
	data, err := diagram.MarshalDocument(doc)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash document")
	}
	return cache.Hash(data), nil
}
