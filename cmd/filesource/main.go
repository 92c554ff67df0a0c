// Reads byte ranges through the file:// backend from the command-line.
//
// Example run:
// $ go run ./cmd/filesource read --root /srv/sync file://videos/intro.mkv --range 0-10 100000-100010
// offset 0: 131 kB
// 1 chunks, 131 kB
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/anacrolix/envpprof"
	"github.com/anacrolix/log"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anacrolix/filesource"
	"github.com/anacrolix/filesource/segments"
	"github.com/anacrolix/filesource/storage"
)

var logger = log.Default.WithNames("main")

var flags struct {
	MetricsAddr string `help:"serve prometheus metrics on this address"`

	*ReadCmd      `arg:"subcommand:read"`
	*BlockifyCmd  `arg:"subcommand:blockify"`
	*ContainedCmd `arg:"subcommand:contained"`
}

type ReadCmd struct {
	Root      string         `arg:"required" help:"sandbox root directory"`
	Range     []byteRange    `help:"desired byte range, start-end"`
	BlockSize *byteSize      `help:"block size desired ranges are expanded to"`
	IoMode    storage.IoMode `help:"classic or mmap"`
	Sorted    bool           `help:"print chunks in offset order"`
	Output    string         `help:"write chunk data, in offset order, to this file"`
	Spec      []string       `arg:"positional,required" help:"file:// resource specs"`
}

type BlockifyCmd struct {
	BlockSize *byteSize   `help:"block size"`
	Range     []byteRange `arg:"positional" help:"byte ranges, start-end"`
}

type ContainedCmd struct {
	Root string   `arg:"positional,required"`
	Dir  []string `arg:"positional"`
}

func main() {
	defer envpprof.Stop()
	if err := mainErr(); err != nil {
		logger.Levelf(log.Error, "error in main: %v", err)
		os.Exit(1)
	}
}

func mainErr() error {
	p := arg.MustParse(&flags)
	if flags.MetricsAddr != "" {
		go func() {
			err := http.ListenAndServe(flags.MetricsAddr, promhttp.Handler())
			logger.Levelf(log.Warning, "metrics server returned: %v", err)
		}()
	}
	switch {
	case flags.ReadCmd != nil:
		return readErr(flags.ReadCmd)
	case flags.BlockifyCmd != nil:
		desired := rangeSet(flags.BlockifyCmd.Range)
		blocks := segments.Blockify(desired, flags.BlockifyCmd.BlockSize.orDefault())
		fmt.Printf("desired: %v\nexpanded: %v (%s)\n", desired, blocks, humanize.IBytes(uint64(blocks.Bytes())))
		return nil
	case flags.ContainedCmd != nil:
		for _, dir := range flags.ContainedCmd.Dir {
			fmt.Printf("%q: %v\n", dir, storage.IsContained(flags.ContainedCmd.Root, dir))
		}
		return nil
	default:
		p.Fail(fmt.Sprintf("unexpected subcommand: %v", p.Subcommand()))
		panic("unreachable")
	}
}

func readErr(cmd *ReadCmd) error {
	opts := filesource.SourceOpts{
		Root:   cmd.Root,
		IoMode: cmd.IoMode,
	}
	opts.BlockSize.Set(cmd.BlockSize.orDefault())
	opts.Logger.Set(logger)
	src, err := filesource.NewSource(opts)
	if err != nil {
		return fmt.Errorf("creating source: %w", err)
	}
	defer src.Close()
	var out *os.File
	if cmd.Output != "" {
		out, err = os.Create(cmd.Output)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	for _, spec := range cmd.Spec {
		chunks, err := src.Read(context.Background(), filesource.Request{
			Spec:    spec,
			Desired: rangeSet(cmd.Range),
		})
		printChunks(chunks, cmd.Sorted)
		if err != nil {
			return fmt.Errorf("reading %q: %w", spec, err)
		}
		if out != nil {
			for _, c := range chunks.Sorted() {
				_, err = out.WriteAt(c.Data, c.Offset)
				if err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
			}
		}
	}
	return nil
}

func printChunks(chunks filesource.Chunks, sorted bool) {
	printChunk := func(c filesource.Chunk) {
		eof := ""
		if c.EOF {
			eof = " (eof)"
		}
		fmt.Printf("offset %v: %s%s\n", c.Offset, humanize.Bytes(uint64(c.Length())), eof)
	}
	if sorted {
		for _, c := range chunks.Sorted() {
			printChunk(c)
		}
	} else {
		for c := range chunks.Iter() {
			printChunk(c)
		}
	}
	fmt.Printf("%d chunks, %s\n", chunks.Len(), humanize.Bytes(uint64(chunks.Bytes())))
}
