package filesource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync/atomic"
	"syscall"

	"github.com/anacrolix/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/anacrolix/filesource/segments"
	"github.com/anacrolix/filesource/storage"
)

// What a host engine needs from a read backend. There's no write method: writing through a read
// backend is rejected by the host.
type Backend interface {
	// Returns the chunks read for the request. An error can accompany chunks read before it
	// occurred.
	Read(ctx context.Context, r Request) (Chunks, error)
	Close() error
}

// Asks for byte ranges of a resource.
type Request struct {
	Spec    string
	Desired segments.RangeSet
}

// Serves file:// resources from below a root directory. Safe for concurrent use: nothing but the
// immutable configuration is shared between requests.
type Source struct {
	root      string
	guard     storage.PathGuard
	blockSize int64
	ioMode    storage.IoMode
	logger    log.Logger
	closed    atomic.Bool

	// storage.ReadBlocks outside of tests.
	readBlocks func(name string, blocks segments.RangeSet, mode storage.IoMode, each func(storage.BlockRead)) error
}

var _ Backend = (*Source)(nil)

func NewSource(opts SourceOpts) (*Source, error) {
	if opts.Root == "" {
		return nil, ErrRootNotSpecified
	}
	if bs := opts.blockSize(); bs <= 0 {
		return nil, fmt.Errorf("block size must be positive, got %v", bs)
	}
	logger := opts.logger()
	return &Source{
		root:       opts.Root,
		guard:      storage.NewPathGuard(opts.Root, opts.maxPathDepth(), logger),
		blockSize:  opts.blockSize(),
		ioMode:     opts.IoMode,
		logger:     logger,
		readBlocks: storage.ReadBlocks,
	}, nil
}

// Builds a Source from host configuration. Missing root is fatal for the backend.
func NewSourceFromConfig(conf map[string]any, logger log.Logger) (*Source, error) {
	opts, err := SourceOptsFromConfig(conf)
	if err != nil {
		return nil, err
	}
	opts.Logger.Set(logger)
	return NewSource(opts)
}

// Empty once the source is closed.
func (me *Source) Root() string {
	if me.closed.Load() {
		return ""
	}
	return me.root
}

func (me *Source) BlockSize() int64 {
	return me.blockSize
}

// Releases the root: Root reports nothing and reads fail with ErrClosed. The host drains requests
// before closing.
func (me *Source) Close() error {
	me.closed.Store(true)
	return nil
}

// Specs without the file:// prefix, or naming no file, aren't ours: they return no chunks and no
// error. Otherwise the directory, and the target of the name if it's a symlink, must lie below the
// root and the name must be a regular file, failing with EPERM and ENOENT respectively (ENOENT if
// both fail). The desired ranges are expanded to whole blocks and read.
func (me *Source) Read(ctx context.Context, r Request) (chunks Chunks, err error) {
	ctx, span := tracer.Start(ctx, "Read", trace.WithAttributes(attribute.String("spec", r.Spec)))
	ignored := false
	defer func() {
		result := readResult(err)
		if ignored {
			result = "ignored"
		}
		endReadSpan(span, chunks, err)
		recordRead(result, chunks)
	}()
	if me.closed.Load() {
		err = ErrClosed
		return
	}
	dir, name, ok := SplitResource(r.Spec)
	if !ok || name == "" {
		me.logger.Levelf(log.Debug, "ignoring spec %q", r.Spec)
		ignored = true
		return
	}
	if err = ctx.Err(); err != nil {
		return
	}
	dir = me.resolveDir(dir)
	contained := me.guard.ContainedFile(dir, name)
	regular := storage.IsRegularFile(dir, name)
	if errno := gateErrno(contained, regular); errno != 0 {
		err = gateError(r.Spec, errno)
		return
	}
	blocks := segments.Blockify(r.Desired, me.blockSize)
	me.logger.Levelf(log.Debug, "desired: %v expanded: %v size=%d", r.Desired, blocks, me.blockSize)
	span.SetAttributes(attribute.Int("blocks", blocks.Len()))
	err = me.readBlocks(storage.JoinDirFile(dir, name), blocks, me.ioMode, func(br storage.BlockRead) {
		chunks.prepend(Chunk{
			Offset: br.Offset,
			Data:   br.Data,
			EOF:    br.Short,
		})
	})
	if err != nil {
		err = fmt.Errorf("reading %q: %w", r.Spec, err)
	}
	return
}

// Relative directories are below the root. Neither is cleaned: the containment walk has to see
// the path the file will be opened through.
func (me *Source) resolveDir(dir string) string {
	dir = filepath.FromSlash(dir)
	if filepath.IsAbs(dir) {
		return dir
	}
	return storage.JoinDirFile(me.root, dir)
}

func readResult(err error) string {
	if err == nil {
		return "ok"
	}
	if errors.Is(err, ErrClosed) {
		return "closed"
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	var pe *fs.PathError
	// Gate errors are the only unwrapped path errors Read returns.
	if errors.As(err, &pe) && pe == err && pe.Op == "read" {
		switch pe.Err {
		case syscall.ENOENT:
			return "not_found"
		case syscall.EPERM:
			return "permission"
		}
	}
	return "io_error"
}
