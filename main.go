package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unsafe"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/df07/go-photon-mapper/pkg/config"
	"github.com/df07/go-photon-mapper/pkg/lights"
	"github.com/df07/go-photon-mapper/pkg/logger"
	"github.com/df07/go-photon-mapper/pkg/photonmap"
	"github.com/df07/go-photon-mapper/pkg/renderer"
	"github.com/df07/go-photon-mapper/pkg/scene"
	"github.com/df07/go-photon-mapper/pkg/tracer"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	sceneName := flag.String("scene", "", "Built-in scene: "+builtinSceneNames())
	photons := flag.Int("photons", 0, "Number of photons to emit")
	seed := flag.Int64("seed", 0, "Random seed for photon emission")
	workers := flag.Int("workers", 0, "Worker goroutines (0 = number of CPUs)")
	out := flag.String("out", "", "Output image (.png or .ppm)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	width := flag.Int("width", 0, "Image width")
	height := flag.Int("height", 0, "Image height")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Photon Mapper")
		fmt.Println("Usage: photonmapper [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, info := range scene.ListBuiltinScenes() {
			fmt.Printf("  %-16s %s\n", info.ID, info.Description)
		}
		fmt.Println()
		fmt.Println("Output defaults to output/<scene>/render_<timestamp>.png")
		return
	}

	cfg := config.DefaultConfig()
	var loadErr error
	if *configPath != "" {
		cfg, loadErr = config.LoadConfig(*configPath)
	}

	// Flags set on the command line override the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = config.SceneConfig{Builtin: *sceneName}
		case "photons":
			cfg.Photons.Count = *photons
		case "seed":
			cfg.Photons.Seed = *seed
		case "workers":
			cfg.Render.Workers = *workers
		case "out":
			cfg.Render.Output = *out
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "width":
			cfg.Render.Width = *width
		case "height":
			cfg.Render.Height = *height
		}
	})

	log, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if loadErr != nil {
		log.Errorf("Error loading config: %v", loadErr)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Errorf("%v", err)
		log.Close()
		os.Exit(1)
	}
}

func builtinSceneNames() string {
	names := ""
	for i, info := range scene.ListBuiltinScenes() {
		if i > 0 {
			names += ", "
		}
		names += info.ID
	}
	return names
}

func newLogger(cfg config.LoggingConfig) (*logger.Logger, error) {
	if cfg.File != "" {
		return logger.NewFileLogger(cfg.Level, cfg.File)
	}
	return logger.New(cfg.Level), nil
}

// run executes the photon pass, balances the map, renders and saves the image
func run(cfg *config.Config, log *logger.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	s, err := createScene(cfg)
	if err != nil {
		return err
	}
	log.Infof("Scene %q: %d spheres, %d lights", s.Name, s.GetPrimitiveCount(), len(s.Lights))

	capacity := cfg.Photons.MapCapacity()
	logSystemInfo(log)
	if err := checkMemory(capacity); err != nil {
		return err
	}

	// Photon pass
	pm := photonmap.New(capacity)
	pm.MinPhotons = cfg.Photons.MinPhotons

	tr := tracer.NewTracer(s, tracer.Config{
		MaxBounces:     cfg.Photons.MaxBounces,
		Seed:           cfg.Photons.Seed,
		ScaleByEmitted: cfg.Photons.ScaleByEmitted,
	})
	tr.SetLogger(log)

	start := time.Now()
	pool := tracer.NewWorkerPool(tr, cfg.Render.Workers)
	stats, err := pool.EmitPhotons(pm, cfg.Photons.Count)
	if err != nil {
		return fmt.Errorf("photon pass: %w", err)
	}
	log.Infof("Traced %d photons with %d workers in %v, %d stored", stats.Emitted, pool.GetNumWorkers(), time.Since(start), pm.Count())
	if stats.Rejected > 0 {
		log.Warnf("Photon map full: %d photons rejected, consider raising photons.capacity", stats.Rejected)
	}

	start = time.Now()
	if err := pm.Balance(); err != nil {
		if errors.Is(err, photonmap.ErrNoPhotons) {
			log.Warnf("No photons were stored, nothing to render")
			return nil
		}
		return fmt.Errorf("balancing photon map: %w", err)
	}
	log.Infof("Balanced %d photons in %v", pm.Count(), time.Since(start))

	// Gather pass
	rt := renderer.NewRaytracer(s, pm, cfg.Render.Width, cfg.Render.Height, renderer.RenderConfig{
		EstimateRadius:  cfg.Photons.EstimateRadius,
		EstimatePhotons: cfg.Photons.EstimatePhotons,
		MaxDepth:        cfg.Render.MaxDepth,
		Workers:         cfg.Render.Workers,
	})
	rt.SetLogger(log)

	pixels, _, err := rt.Render()
	if err != nil {
		return err
	}

	img := renderer.ToImage(pixels, cfg.Render.Width, cfg.Render.Height, cfg.Render.Exposure, cfg.Render.Gamma)
	path := cfg.Render.Output
	if path == "" {
		path = createOutputPath(s.Name, time.Now())
	}
	if err := renderer.SaveImage(img, path); err != nil {
		return err
	}
	log.Infof("Render saved as %s", path)
	return nil
}

// createScene builds the configured scene and prepares its light sampler
func createScene(cfg *config.Config) (*scene.Scene, error) {
	s, err := scene.FromConfig(cfg.Scene)
	if err != nil {
		return nil, fmt.Errorf("creating scene: %w", err)
	}
	if err := s.Preprocess(lights.SelectionPolicy(cfg.Photons.LightSelection)); err != nil {
		return nil, fmt.Errorf("preparing scene %q: %w", s.Name, err)
	}
	return s, nil
}

// createOutputPath returns output/<scene>/render_<timestamp>.png
func createOutputPath(sceneName string, now time.Time) string {
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// photonMapBytes estimates the memory used by a map of capacity photons during balancing
func photonMapBytes(capacity int) uint64 {
	perPhoton := uint64(unsafe.Sizeof(photonmap.Photon{})) + 2*uint64(unsafe.Sizeof(int(0)))
	return uint64(capacity+1) * perPhoton
}

// checkMemory fails when the photon map would not fit in available memory
func checkMemory(capacity int) error {
	vm, err := mem.VirtualMemory()
	if err != nil {
		// Not fatal: some platforms do not report memory
		return nil
	}
	return fitsInMemory(photonMapBytes(capacity), vm.Available)
}

func fitsInMemory(needed, available uint64) error {
	if needed > available {
		return fmt.Errorf("photon map needs %d MiB but only %d MiB is available", needed>>20, available>>20)
	}
	return nil
}

// logSystemInfo reports the host CPU and memory at debug level
func logSystemInfo(log *logger.Logger) {
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		log.Debugf("CPU: %s (%d logical cores)", infos[0].ModelName, len(infos))
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		log.Debugf("Memory: %d MiB available of %d MiB", vm.Available>>20, vm.Total>>20)
	}
}
