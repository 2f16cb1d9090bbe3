// Command swen is the reference host for the compositor core.
//
// It reads a .swen markup file, parses it into a scene tree, renders
// the desktop through the software backend (one frame, or n with
// -frames), and optionally writes the last frame as a PNG. Exit code 0 on clean shutdown, non-zero on
// parse or backend failure.
//
// Usage:
//
//	swen [-out frame.png] [-frames n] [-v] scene.swen
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"github.com/swen-ui/swen"
	"github.com/swen-ui/swen/backend"
	"github.com/swen-ui/swen/parser"
	"github.com/swen-ui/swen/render"
)

func main() {
	out := flag.String("out", "", "write the rendered frame to this PNG file")
	frames := flag.Int("frames", 1, "number of frames to render")
	verbose := flag.Bool("v", false, "enable debug logging to stderr")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: swen [-out frame.png] [-frames n] [-v] scene.swen")
		os.Exit(2)
	}

	if *verbose {
		swen.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(flag.Arg(0), *out, *frames); err != nil {
		fmt.Fprintln(os.Stderr, "swen:", err)
		os.Exit(1)
	}
}

func run(path, out string, frames int) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	root, err := parser.ParseSource(src)
	if err != nil {
		return err
	}

	sw := backend.NewSoftwareBackend()
	if err := sw.Init(); err != nil {
		return err
	}
	r := render.NewRenderer(sw)
	defer r.Close()

	for i := 0; i < frames; i++ {
		result, err := r.RenderDesktop(root.Desktop)
		if err != nil {
			return err
		}
		swen.Logger().Info("frame rendered",
			"frame", r.Buffer().Frame(),
			"tiles", result.TilesRendered,
			"submit", result.SubmitTime)
	}

	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := png.Encode(f, sw.Image()); err != nil {
			return err
		}
	}
	return nil
}
