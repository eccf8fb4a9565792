package bmp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type job struct {
	in, out string
}

func isBitmap(file string) bool {
	name := strings.ToLower(file)
	for _, ext := range []string{".bmp", ".bmp" + extGzip, ".bmp" + extZstd} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func (p *Processor) findBitmaps(ctx context.Context, base, dest string) (<-chan job, <-chan error, error) {
	out := make(chan job)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Never descend into our own output
			if info.Mode().IsDir() && file == dest && file != base {
				return filepath.SkipDir
			}

			if !info.Mode().IsRegular() || !isBitmap(file) {
				return nil
			}

			rel, err := filepath.Rel(base, file)
			if err != nil {
				return err
			}

			select {
			case out <- job{in: file, out: filepath.Join(dest, rel)}:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (p *Processor) bitmapWorker(ctx context.Context, in <-chan job) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for j := range in {
			if err := os.MkdirAll(filepath.Dir(j.out), 0777); err != nil {
				errc <- err
				return
			}
			if err := p.ProcessFile(j.in, j.out); err != nil {
				errc <- err
				return
			}
			p.logger.Printf("Wrote \"%s\"\n", j.out)
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Batch processes every bitmap found under the directory src, writing each
// result to the same relative path under dest. Files are processed by workers
// goroutines and the first error stops the batch.
func (p *Processor) Batch(src, dest string, workers int) error {
	base, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	if dest, err = filepath.Abs(dest); err != nil {
		return err
	}
	if workers < 1 {
		workers = 1
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	jobs, errc, err := p.findBitmaps(ctx, base, dest)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := p.bitmapWorker(ctx, jobs)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
