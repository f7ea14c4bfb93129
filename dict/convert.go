package dict

import (
	"context"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
)

// retroflexInitials are the two-letter initials consumed as a unit.
var retroflexInitials = [...]string{"zh", "ch", "sh"}

// Convert rewrites a full syllable into its double pinyin code under s.
// Fragments s does not encode contribute nothing to the result.
func Convert(full string, s *Scheme) string {
	out, _ := ConvertDetailed(full, s)
	return out
}

// ConvertDetailed is Convert that also reports whether any fragment of the
// syllable was missing from the scheme.
func ConvertDetailed(full string, s *Scheme) (out string, missed bool) {
	if s == nil || s.IsIdentity() || full == "" {
		return full, false
	}

	if s.useZeroInitial {
		if code, ok := s.zeroInitial[full]; ok {
			return code, false
		}
	}

	var sb strings.Builder
	rest := full

	retroflex := false
	for _, initial := range retroflexInitials {
		if strings.HasPrefix(full, initial) {
			retroflex = true
			code, ok := s.Lookup(initial)
			if !ok {
				missed = true
			}
			sb.WriteString(code)
			rest = full[len(initial):]
			break
		}
	}
	if !retroflex {
		sb.WriteString(full[:1])
		rest = full[1:]
	}

	if rest != "" {
		code, ok := s.Lookup(rest)
		if !ok {
			missed = true
		}
		sb.WriteString(code)
	}

	return sb.String(), missed
}

// MissFunc observes a syllable that could not be fully encoded.
type MissFunc func(scheme, syllable string)

// Converter rewrites whole key sequences, spreading the work over a pool.
// The conversion of one key never depends on another, so chunks run in
// any order and are written back by position.
type Converter struct {
	pool      *ants.Pool
	chunkSize int
	onMiss    MissFunc
	logger    *slog.Logger
	misses    atomic.Int64
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter) error

// WithPoolSize sets the worker pool size for batch conversion.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) ConverterOption {
	return func(c *Converter) error {
		if size < 1 {
			size = 1
		}
		if c.pool != nil {
			c.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		c.pool = pool
		return nil
	}
}

// WithChunkSize sets how many keys one pool task converts.
// Default is 64.
func WithChunkSize(size int) ConverterOption {
	return func(c *Converter) error {
		if size < 1 {
			size = 1
		}
		c.chunkSize = size
		return nil
	}
}

// WithMissFunc registers a callback for every syllable that misses.
func WithMissFunc(fn MissFunc) ConverterOption {
	return func(c *Converter) error {
		c.onMiss = fn
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ConverterOption {
	return func(c *Converter) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewConverter creates a batch converter.
func NewConverter(opts ...ConverterOption) (*Converter, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	c := &Converter{
		pool:      pool,
		chunkSize: 64,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(c); optErr != nil {
			c.Release()
			return nil, optErr
		}
	}

	return c, nil
}

// ConvertKeys converts every element of originalKeys under s and returns a
// new, positionally aligned sequence. The identity scheme returns a copy.
func (c *Converter) ConvertKeys(ctx context.Context, originalKeys []string, s *Scheme) ([]string, error) {
	if s == nil {
		return nil, ErrSchemeRequired
	}
	if s.IsIdentity() {
		return slices.Clone(originalKeys), nil
	}

	keys := make([]string, len(originalKeys))

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		missed []string
	)

	for start := 0; start < len(originalKeys); start += c.chunkSize {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		end := min(start+c.chunkSize, len(originalKeys))
		wg.Add(1)
		err := c.pool.Submit(func() {
			defer wg.Done()
			var local []string
			for i := start; i < end; i++ {
				out, miss := ConvertDetailed(originalKeys[i], s)
				keys[i] = out
				if miss {
					local = append(local, originalKeys[i])
				}
			}
			if len(local) > 0 {
				mu.Lock()
				missed = append(missed, local...)
				mu.Unlock()
			}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()

	if len(missed) > 0 {
		slices.Sort(missed)
		c.misses.Add(int64(len(missed)))
		for _, syllable := range missed {
			c.logger.Debug("syllable not encodable", "scheme", s.Name(), "syllable", syllable)
			if c.onMiss != nil {
				c.onMiss(s.Name(), syllable)
			}
		}
		c.logger.Warn("double pinyin lookup misses", "scheme", s.Name(), "count", len(missed), "total", len(originalKeys))
	}

	return keys, nil
}

// Misses returns the number of syllables that missed across all conversions.
func (c *Converter) Misses() int64 {
	return c.misses.Load()
}

// Release releases the worker pool.
// The converter should not be used after calling Release.
func (c *Converter) Release() {
	if c.pool != nil {
		c.pool.Release()
	}
}

// Rekey returns a copy of t whose keys are encoded under s.
func (c *Converter) Rekey(ctx context.Context, t *Table, s *Scheme) (*Table, error) {
	keys, err := c.ConvertKeys(ctx, t.originalKeys, s)
	if err != nil {
		return nil, err
	}
	return t.WithKeys(s.Name(), keys)
}
