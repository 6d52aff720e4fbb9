package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kpfaulkner/imgsample/core"
	"github.com/kpfaulkner/imgsample/util"
)

func main() {
	infile := flag.String("i", "", "input image file")
	reqWidth := flag.Int("w", 0, "requested width")
	reqHeight := flag.Int("h", 0, "requested height")
	flag.Parse()

	f, err := os.Open(*infile)
	if err != nil {
		fmt.Printf("Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	codec, err := core.NewStdCodec(nil)
	if err != nil {
		fmt.Printf("Error creating codec: %v\n", err)
		os.Exit(1)
	}

	dim, format, err := codec.Probe(f)
	if err != nil {
		fmt.Printf("Error probing: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s %s\n", format, dim)

	if *reqWidth > 0 && *reqHeight > 0 {
		factor, err := core.ComputeSampleFactor(dim, *reqWidth, *reqHeight)
		if err != nil {
			fmt.Printf("Error computing sample factor: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("sample factor %d (2^%d) decodes to %s\n", factor, util.FloorLog2(uint64(factor)), dim.Reduce(factor))
	}
}
