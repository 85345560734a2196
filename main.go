package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/image/font/basicfont"

	"github.com/shadeos/shade/internal/anim"
	"github.com/shadeos/shade/internal/app"
	"github.com/shadeos/shade/internal/asset"
	"github.com/shadeos/shade/internal/auth"
	"github.com/shadeos/shade/internal/display"
	"github.com/shadeos/shade/internal/geo"
	"github.com/shadeos/shade/internal/input"
	"github.com/shadeos/shade/internal/lock"
	"github.com/shadeos/shade/internal/render"
	"github.com/shadeos/shade/internal/state"
)

func main() {
	// Flags
	colorFlag := flag.String("color", "000000", "background color as RRGGBB when no wallpaper is set")
	imagePath := flag.String("image", "", "wallpaper image path (PNG or JPEG)")
	tile := flag.Bool("tile", false, "repeat the wallpaper across the surface instead of fit-scaling it")
	noIndicator := flag.Bool("no-indicator", false, "disable the unlock indicator entirely")
	showEmpty := flag.Bool("show-when-empty", false, "keep the indicator visible while the buffer is empty")
	fontPath := flag.String("font", "", "TTF font path; enables the failed-attempts line")
	seed := flag.Int64("seed", 0, "animation seed; 0 derives one from the clock")
	fbDev := flag.String("fb", "/dev/fb0", "framebuffer device")
	scale := flag.Float64("scale", 0, "DPI scale override; 0 derives it from -height-mm")
	heightMM := flag.Int("height-mm", 0, "physical panel height in millimeters, for DPI scaling")
	previewPath := flag.String("preview", "", "render one frame to this PNG and exit instead of locking")
	secret := flag.String("secret", "", "passphrase for the built-in authenticator")
	debug := flag.Bool("debug", false, "enable debug logging to ./shade-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via SHADE_STDIO_LOG")
	flag.Parse()

	// Best-effort: get panic stack traces into a file, since the console
	// is in graphics mode while locked.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv("SHADE_STDIO_LOG")
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./shade-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	// Visual configuration; anything malformed aborts before the event
	// loop starts.
	cfg := render.DefaultConfig()
	background, err := render.ParseHexColor(*colorFlag)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	cfg.Background = background
	cfg.Tile = *tile
	cfg.Indicator = !*noIndicator
	cfg.ShowWhenEmpty = *showEmpty

	if *imagePath != "" {
		wallpaper, err := loadImage(*imagePath)
		if err != nil {
			fmt.Println("wallpaper error:", err)
			os.Exit(2)
		}
		cfg.Wallpaper = wallpaper
	}

	if *fontPath != "" {
		face, err := render.LoadFace(*fontPath, 18)
		if err != nil {
			logger.Errorf("main", "font load failed, using basicfont: %v", err)
			face = basicfont.Face7x13
		}
		cfg.Face = face
	}

	// The asset loader is the collaborator that would parse an SVG; the
	// stock build ships a drawn-in-code layer set.
	set := asset.DefaultLayerSet()

	var strategy anim.Strategy = anim.Sequential{}
	if !set.Sequential() {
		s := *seed
		if s == 0 {
			s = time.Now().UnixNano()
		}
		strategy = anim.NewRandomized(s)
	}
	sel := anim.NewSelector(strategy)

	if *previewPath != "" {
		if err := runPreview(cfg, set, sel, *scale, *previewPath); err != nil {
			fmt.Println("preview error:", err)
			os.Exit(1)
		}
		return
	}

	if *secret == "" {
		fmt.Println("config error: lock mode needs -secret")
		os.Exit(2)
	}

	surface, err := display.OpenFramebuffer(*fbDev)
	if err != nil {
		fmt.Println("framebuffer error:", err)
		os.Exit(1)
	}

	topology := geo.Func{
		// A single framebuffer has no per-output regions; the renderer
		// centers once within the full resolution.
		RegionsFn: func() []geo.Region { return nil },
		ScaleFn: func() float64 {
			if *scale > 0 {
				return *scale
			}
			return geo.ScaleFactor(surface.Size().Height, *heightMM)
		},
	}

	store := state.NewStore()
	comp := render.NewCompositor(cfg, set, sel, topology)
	renderer := render.NewSurfaceRenderer(comp, surface)
	renderer.Logger = logger

	keyboard := input.NewEvdev()
	keyboard.Logger = logger

	authenticator := auth.NewStatic(*secret)
	machine := lock.NewMachine(store, sel, set.AnimFrames(), renderer, authenticator)

	a := app.New(store, machine, renderer, keyboard, authenticator)
	a.Logger = logger
	a.Console = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Start(ctx); err != nil && err != context.Canceled {
		fmt.Println("shade:", err)
		os.Exit(1)
	}
}

// runPreview renders one mid-typing frame for asset authors.
func runPreview(cfg render.Config, set *asset.LayerSet, sel *anim.Selector, scale float64, outPath string) error {
	cfg.ShowWhenEmpty = true
	surface := display.NewMemory(1920, 1080)
	comp := render.NewCompositor(cfg, set, sel, geo.Static{Factor: scale})

	sel.Advance(set.AnimFrames())
	snap := state.State{Unlock: state.KeyActive, Pam: state.PamVerify, Input: 3}
	img, err := comp.Render(snap, surface.Size())
	if err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
