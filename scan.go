package spritepal

import (
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
)

// manifestSuffix is appended to a snapshot filename when Scan writes out
// the regions it recognized.
const manifestSuffix = ".regions.json"

func isSnapshot(file string) bool {
	switch filepath.Ext(file) {
	case ".vram", ".dmp":
		return true
	}
	return false
}

func (e *Editor) findSnapshots(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !isSnapshot(file) {
				return nil
			}

			// Ignore anything too big to be a VRAM dump
			if info.Size() > 1<<20 {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (e *Editor) snapshotWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			crc, err := crcFile(file)
			if err != nil {
				errc <- err
				return
			}

			game, err := e.db.FindGameByCRC(crc)
			if err != nil {
				errc <- err
				return
			}
			if game == "" {
				e.logger.Printf("No match for \"%s\", with CRC \"%s\"\n", file, crc)
				continue
			}

			regions, err := e.db.FindRegionsByCRC(crc)
			if err != nil {
				errc <- err
				return
			}

			e.logger.Printf("\"%s\" is %s, %d known region(s)\n", file, game, len(regions))

			if len(regions) == 0 {
				continue
			}

			b, err := json.MarshalIndent(regions, "", "  ")
			if err != nil {
				errc <- err
				return
			}

			if err := ioutil.WriteFile(file+manifestSuffix, b, 0644); err != nil {
				errc <- err
				return
			}
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

// Scan walks path looking for tile memory snapshots, matches them against
// the region database by checksum and writes a region manifest alongside
// each recognized dump.
func (e *Editor) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := e.findSnapshots(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < 10; i++ {
		errc, err := e.snapshotWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
