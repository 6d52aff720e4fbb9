package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/imgsample/core"
	"github.com/kpfaulkner/imgsample/media"
	"github.com/kpfaulkner/imgsample/options"
)

func main() {
	infile := flag.String("i", "", "input image file")
	configFile := flag.String("config", "", "yaml config file")
	picturesDir := flag.String("o", "", "pictures directory (overrides config)")
	appName := flag.String("app", "", "app name (overrides config)")
	maxWidth := flag.Int("w", 0, "max width, requires -h")
	maxHeight := flag.Int("h", 0, "max height, requires -w")
	profileMode := flag.String("profile", "", "cpu or mem profile written to the current directory")
	flag.Parse()

	if *infile == "" {
		fmt.Printf("input file must be specified\n")
		os.Exit(1)
	}

	cfg := options.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = options.LoadConfig(*configFile); err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
	}
	if *picturesDir != "" {
		cfg.PicturesDir = *picturesDir
	}
	if *appName != "" {
		cfg.AppName = *appName
	}
	if *maxWidth != 0 || *maxHeight != 0 {
		cfg.MaxWidth = *maxWidth
		cfg.MaxHeight = *maxHeight
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := cfg.ApplyLogLevel(); err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileHeap, profile.ProfilePath(".")).Stop()
	case "":
	default:
		log.Fatalf("unknown profile mode %q", *profileMode)
	}

	decoder, err := core.NewDecoder(cfg.DecoderOptions().WithDebug(log.IsLevelEnabled(log.DebugLevel)))
	if err != nil {
		log.Fatalf("Error creating decoder: %v", err)
	}

	start := time.Now()
	img, err := media.LoadFile(decoder, *infile, cfg.MaxWidth, cfg.MaxHeight)
	if err != nil {
		log.Errorf("Error loading %s (%s): %v", *infile, core.KindOf(err), err)
		return
	}
	fmt.Printf("loading took %d ms\n", time.Since(start).Milliseconds())
	fmt.Printf("decoded size %dx%d\n", img.Bounds().Dx(), img.Bounds().Dy())

	var notifier media.Notifier = media.LogNotifier{}
	if cfg.IndexFile != "" {
		notifier = media.NewIndexFileNotifier(cfg.IndexFile)
	}
	store := media.NewStore(cfg, media.WithNotifier(notifier))

	startSaving := time.Now()
	res := <-store.SaveImageAsync(context.Background(), img)
	store.WaitNotified()
	if res.Err != nil {
		log.Errorf("Error saving image: %v", res.Err)
		return
	}
	fmt.Printf("saving took %d ms\n", time.Since(startSaving).Milliseconds())
	fmt.Printf("saved %s\n", res.Path)
}
