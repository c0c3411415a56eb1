package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tomz197/spacepong/internal/imageview"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <image>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "showimage: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	pixels, err := imageview.Decode(path)
	if err != nil {
		return err
	}
	surface, err := pixels.ToSurface(0)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"path":     path,
		"format":   pixels.Format,
		"width":    pixels.Width,
		"height":   pixels.Height,
		"channels": pixels.Channels,
	}).Info("image loaded")

	return imageview.NewViewer(surface.Image()).Run("Show Image")
}
