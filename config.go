package filesource

import (
	"fmt"

	"github.com/anacrolix/log"
	"github.com/dustin/go-humanize"

	g "github.com/anacrolix/generics"

	"github.com/anacrolix/filesource/segments"
	"github.com/anacrolix/filesource/storage"
)

// Configuration keys understood by SourceOptsFromConfig.
const (
	ConfigRoot         = "root"
	ConfigBlockSize    = "block-size"
	ConfigIoMode       = "io-mode"
	ConfigMaxPathDepth = "max-path-depth"
)

type SourceOpts struct {
	// Directory that resources are served from and may not escape. Required.
	Root string
	// Desired ranges are expanded to multiples of this. Defaults to segments.DefaultBlockSize.
	BlockSize g.Option[int64]
	// Limits how many parent directories are walked looking for Root. Defaults to
	// storage.MaxPathDepth.
	MaxPathDepth g.Option[int]
	IoMode       storage.IoMode
	Logger       g.Option[log.Logger]
}

func (me SourceOpts) blockSize() int64 {
	return me.BlockSize.UnwrapOr(segments.DefaultBlockSize)
}

func (me SourceOpts) maxPathDepth() int {
	return me.MaxPathDepth.UnwrapOr(storage.MaxPathDepth)
}

func (me SourceOpts) logger() log.Logger {
	return me.Logger.UnwrapOr(log.Default).WithNames("filesource")
}

// Builds options from the generic key-value configuration a host engine hands its backends. Values
// are typically decoded JSON, so numbers may arrive as float64, and sizes may be strings like
// "64 KiB".
func SourceOptsFromConfig(conf map[string]any) (opts SourceOpts, err error) {
	root, ok := conf[ConfigRoot]
	if !ok {
		err = ErrRootNotSpecified
		return
	}
	opts.Root, ok = root.(string)
	if !ok || opts.Root == "" {
		err = fmt.Errorf("%w: %q must be a non-empty string", ErrRootNotSpecified, ConfigRoot)
		return
	}
	if v, ok := conf[ConfigBlockSize]; ok {
		var bs int64
		bs, err = configSize(v)
		if err != nil {
			err = fmt.Errorf("parsing %q: %w", ConfigBlockSize, err)
			return
		}
		opts.BlockSize.Set(bs)
	}
	if v, ok := conf[ConfigMaxPathDepth]; ok {
		var depth int64
		depth, err = configInt(v)
		if err != nil {
			err = fmt.Errorf("parsing %q: %w", ConfigMaxPathDepth, err)
			return
		}
		opts.MaxPathDepth.Set(int(depth))
	}
	if v, ok := conf[ConfigIoMode]; ok {
		s, ok := v.(string)
		if !ok {
			err = fmt.Errorf("%q must be a string, got %T", ConfigIoMode, v)
			return
		}
		opts.IoMode, err = storage.ParseIoMode(s)
		if err != nil {
			return
		}
	}
	return
}

func configInt(v any) (int64, error) {
	switch v := v.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
		return int64(v), nil
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

func configSize(v any) (int64, error) {
	if s, ok := v.(string); ok {
		u, err := humanize.ParseBytes(s)
		return int64(u), err
	}
	return configInt(v)
}
