package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
)

// runBatch decodes every *.jpg/*.jpeg file in dir, writing one PPM per
// input into outDir and aggregating per-file failures with multierr so
// one bad file does not stop the rest of the batch from being attempted.
func runBatch(dir, outDir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var errs error
	failed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".jpg" && ext != ".jpeg" {
			continue
		}
		in := filepath.Join(dir, e.Name())
		out := filepath.Join(outDir, strings.TrimSuffix(e.Name(), ext)+".ppm")
		if err := runDecode(in, out, "", false); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", e.Name(), err))
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", e.Name(), err)
			continue
		}
		fmt.Printf("OK   %s -> %s\n", e.Name(), out)
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed: %w", failed, errs)
	}
	return nil
}
