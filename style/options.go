package style

import (
	"bytes"
	"errors"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/stylekit/pkg/grid"
	"github.com/joshuapare/stylekit/pkg/types"
	"github.com/joshuapare/stylekit/style/compose"
	"github.com/joshuapare/stylekit/style/metrics"
	"github.com/joshuapare/stylekit/style/pointcache"
)

// Options configures a Storage.
type Options struct {
	// MaxColumn and MaxRow bound the sheet.
	// Default: 18278 x 1048576
	MaxColumn int
	MaxRow    int

	// CacheCapacity is the number of composed cell styles kept in the point
	// cache. Set to 0 to disable caching.
	// Default: 10000
	CacheCapacity int

	// GCDelay is the minimum time between two garbage collector steps run
	// through Tick. RunGCStep and CollectGarbage ignore it.
	// Default: 100ms
	GCDelay time.Duration

	// InsertMode decides what inserted rows, columns and cells contain.
	// Default: grid.CopyNone
	InsertMode grid.InsertMode

	// MaxParentDepth bounds named-style parent chains.
	// Default: 64
	MaxParentDepth int

	// Metrics receives storage instrumentation. nil disables it.
	Metrics *metrics.Collector
}

// DefaultOptions returns the options used when New is given nil.
func DefaultOptions() *Options {
	return &Options{
		MaxColumn:      types.DefaultMaxColumn,
		MaxRow:         types.DefaultMaxRow,
		CacheCapacity:  pointcache.DefaultCapacity,
		GCDelay:        100 * time.Millisecond,
		InsertMode:     grid.CopyNone,
		MaxParentDepth: compose.DefaultMaxParentDepth,
	}
}

// Limits returns the grid bounds.
func (o *Options) Limits() types.Limits {
	return types.Limits{MaxColumn: o.MaxColumn, MaxRow: o.MaxRow}
}

// Validate reports the first unusable field.
func (o *Options) Validate() error {
	switch {
	case o.MaxColumn < 1:
		return types.ConfigError("max_column %d must be positive", o.MaxColumn)
	case o.MaxRow < 1:
		return types.ConfigError("max_row %d must be positive", o.MaxRow)
	case o.CacheCapacity < 0:
		return types.ConfigError("cache_capacity %d must not be negative", o.CacheCapacity)
	case o.GCDelay < 0:
		return types.ConfigError("gc_delay %s must not be negative", o.GCDelay)
	case o.InsertMode != grid.CopyNone && o.InsertMode != grid.CopyPrevious:
		return types.ConfigError("unknown insert mode %d", int(o.InsertMode))
	case o.MaxParentDepth < 0:
		return types.ConfigError("max_parent_depth %d must not be negative", o.MaxParentDepth)
	}
	return nil
}

// fileOptions is the YAML shape of Options.
type fileOptions struct {
	MaxColumn      int           `yaml:"max_column"`
	MaxRow         int           `yaml:"max_row"`
	CacheCapacity  int           `yaml:"cache_capacity"`
	GCDelay        time.Duration `yaml:"gc_delay"`
	InsertMode     string        `yaml:"insert_mode"`
	MaxParentDepth int           `yaml:"max_parent_depth"`
}

// ParseOptions reads YAML options. Keys that are absent keep their default;
// unknown keys are rejected.
//
//	max_column: 1024
//	max_row: 65536
//	cache_capacity: 5000
//	gc_delay: 250ms
//	insert_mode: copy-previous
//	max_parent_depth: 16
func ParseOptions(data []byte) (*Options, error) {
	def := DefaultOptions()
	f := fileOptions{
		MaxColumn:      def.MaxColumn,
		MaxRow:         def.MaxRow,
		CacheCapacity:  def.CacheCapacity,
		GCDelay:        def.GCDelay,
		InsertMode:     def.InsertMode.String(),
		MaxParentDepth: def.MaxParentDepth,
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, &types.Error{Kind: types.ErrKindConfig, Msg: "parse options", Err: err}
	}

	mode, err := grid.ParseInsertMode(f.InsertMode)
	if err != nil {
		return nil, types.ConfigError("%v", err)
	}
	opts := &Options{
		MaxColumn:      f.MaxColumn,
		MaxRow:         f.MaxRow,
		CacheCapacity:  f.CacheCapacity,
		GCDelay:        f.GCDelay,
		InsertMode:     mode,
		MaxParentDepth: f.MaxParentDepth,
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// LoadOptions reads YAML options from path.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindConfig, Msg: "read options " + path, Err: err}
	}
	return ParseOptions(data)
}
