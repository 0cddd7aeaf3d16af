// Command assdemo renders one frame of a subtitle scene to a PNG file.
//
// Usage:
//
//	assdemo [-scene scene.yaml] [-config ass.yaml] [-time 1500] [-output frame.png]
//
// Without -scene a built-in scene is rendered.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/ass"
)

func main() {
	var (
		width      = flag.Int("width", 640, "frame width")
		height     = flag.Int("height", 360, "frame height")
		scenePath  = flag.String("scene", "", "YAML scene file (default: built-in scene)")
		configPath = flag.String("config", "", "YAML renderer configuration")
		fontsDir   = flag.String("fonts", "", "directory of extra font files")
		now        = flag.Int64("time", 1000, "timestamp to render, in milliseconds")
		output     = flag.String("output", "frame.png", "output file")
		verbose    = flag.Bool("v", false, "log font and cache diagnostics")
	)
	flag.Parse()

	lib := ass.NewLibrary()
	if *verbose {
		lib.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if *fontsDir != "" {
		if _, err := lib.SetFontsDir(*fontsDir); err != nil {
			log.Printf("fonts: %v", err)
		}
	}

	r := ass.NewRenderer(lib, ass.WithFrameSize(*width, *height), ass.WithShaper(ass.ShapingComplex))
	if *configPath != "" {
		cfg, err := ass.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if err := r.ApplyConfig(cfg); err != nil {
			log.Fatalf("Failed to apply config: %v", err)
		}
	}

	sc, err := loadScene(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	t, err := sc.build(lib)
	if err != nil {
		log.Fatalf("Failed to build track: %v", err)
	}

	images, _ := r.RenderFrame(t, *now)
	w, h := r.FrameSize()
	if w == 0 || h == 0 {
		w, h = *width, *height
	}
	frame := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(frame, frame.Bounds(), &image.Uniform{C: color.RGBA{R: 40, G: 60, B: 80, A: 255}}, image.Point{}, draw.Src)
	ass.Composite(frame, images)

	if err := save(*output, frame); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Frame at %dms saved to %s (%dx%d, %d images)\n", *now, *output, w, h, images.Len())
}

func save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
