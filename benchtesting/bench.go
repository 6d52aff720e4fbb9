package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/imgsample/core"
	"github.com/kpfaulkner/imgsample/util"
)

func main() {
	iterations := flag.Int("n", 10, "decodes per file")
	reqWidth := flag.Int("w", 1024, "requested width")
	reqHeight := flag.Int("h", 768, "requested height")
	memProfile := flag.Bool("mem", false, "heap profile instead of cpu")
	flag.Parse()

	filePaths := flag.Args()
	if len(filePaths) == 0 {
		fmt.Printf("usage: bench [-n N] [-w W -h H] file...\n")
		os.Exit(1)
	}

	mode := profile.CPUProfile
	if *memProfile {
		mode = profile.MemProfileHeap
	}
	p := profile.Start(mode, profile.ProfilePath("."))
	defer p.Stop()

	decoder, err := core.NewDecoder(nil)
	if err != nil {
		log.Fatalf("boomage %v", err)
	}

	var all [][]byte
	for _, file := range filePaths {
		fmt.Printf("file %s\n", file)
		data, err := os.ReadFile(file)
		if err != nil {
			log.Errorf("Error opening file: %v\n", err)
			return
		}
		all = append(all, data)

		start := time.Now()
		for count := 0; count < *iterations; count++ {
			img, err := decoder.LoadBounded(bytes.NewReader(data), *reqWidth, *reqHeight)
			if err != nil {
				fmt.Printf("Error decoding: %v\n", err)
				return
			}
			if _, err := core.EncodePNG(img); err != nil {
				log.Fatalf("boomage %v", err)
			}
		}
		fmt.Printf("load+encode average %d ms\n", time.Since(start).Milliseconds()/int64(*iterations))
	}

	start := time.Now()
	sources := make([]io.ReadSeeker, len(all))
	for i, data := range all {
		sources[i] = bytes.NewReader(data)
	}
	if _, err := decoder.LoadBoundedAll(context.Background(), sources, *reqWidth, *reqHeight); err != nil {
		log.Fatalf("boomage %v", err)
	}
	fmt.Printf("concurrent load of %d files took %d ms\n", len(sources), time.Since(start).Milliseconds())

	for name, m := range util.GetPoolMetrics() {
		fmt.Printf("pool %s hits %d misses %d\n", name, m["hits"], m["misses"])
	}
}
