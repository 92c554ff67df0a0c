/*
Package filesource implements a read-only backend for a pull-based synchronization engine that
serves byte ranges of files below a sandbox root.

Simple example:

	src, _ := filesource.NewSource(filesource.SourceOpts{Root: "/srv/sync"})
	defer src.Close()
	chunks, err := src.Read(ctx, filesource.Request{
		Spec:    "file://videos/intro.mkv",
		Desired: segments.NewRangeSet(segments.Extent{Start: 0, Length: 10}),
	})
	for c := range chunks.Iter() {
		log.Printf("got %v bytes at %v (eof=%v)", c.Length(), c.Offset, c.EOF)
	}

Desired ranges are expanded to 64 KiB aligned blocks before reading, so chunks usually cover more
than was asked for. Chunks are produced most recent first; use Chunks.Sorted for offset order.
*/
package filesource
