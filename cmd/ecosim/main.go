package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gocodealone/cellzones/ecology"
)

func main() {
	var (
		help        = flag.Bool("help", false, "Show help message")
		width       = flag.Int("width", 80, "Grid width in cells")
		height      = flag.Int("height", 40, "Grid height in cells")
		wrap        = flag.Bool("wrap", true, "Wrap grid edges into a torus")
		seed        = flag.Int64("seed", 0, "Random seed (0 derives from current time)")
		popSize     = flag.Int("pop-size", 30, "Population size per seeded species")
		layout      = flag.String("layout", "random", "Zone layout: neutral, random, quadrant, ring")
		pattern     = flag.String("pattern", "random", "Seed pattern: random, center, edge")
		speciesCfg  = flag.String("species", "", "Optional JSON/YAML species config (§6 LoadRecords)")
		ticks       = flag.Int("ticks", 0, "Run this many ticks non-interactively and exit (0 launches the TUI)")
		loadState   = flag.String("load", "", "Load a saved simulation state and resume from it")
		saveState   = flag.String("save", "", "Save the simulation state to this file after running")
		shiftEvery  = flag.Int("shift-period", 0, "Enable periodic zone shifting every N generations (0 disables it)")
		verbose     = flag.Bool("verbose", false, "Emit per-tick zerolog summaries to stderr")
		metricsAddr = flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090); disabled if empty")
	)
	flag.Parse()

	if *help {
		fmt.Println("cellzones - a toroidal cellular ecology simulator")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Printf("  %s [options]\n", os.Args[0])
		fmt.Println()
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Controls (interactive mode):")
		fmt.Println("  space    pause/resume")
		fmt.Println("  enter    manual step (while paused)")
		fmt.Println("  v        cycle grid/stats/zones view")
		fmt.Println("  z        cycle zoom")
		fmt.Println("  ?        toggle help")
		fmt.Println("  q        quit")
		return
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	grid, err := ecology.NewGrid(*width, *height, *wrap, *seed)
	if err != nil {
		log.Fatalf("creating grid: %v", err)
	}

	if *verbose {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
		grid.SetLogger(logger)
	}

	if *shiftEvery > 0 {
		grid.Zones.EnableShifting(*shiftEvery)
	}

	var metrics *ecology.Metrics
	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics = ecology.NewMetrics(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Printf("metrics server stopped: %v", err)
			}
		}()
	}

	if *loadState != "" {
		if err := ecology.NewStateManager(grid).LoadFromFile(*loadState); err != nil {
			log.Fatalf("loading state: %v", err)
		}
	} else if *speciesCfg != "" {
		records, err := ecology.LoadRecords(*speciesCfg)
		if err != nil {
			log.Fatalf("loading species config: %v", err)
		}
		grid.SetupZones(parseLayout(*layout))
		for _, r := range records {
			sp := grid.Registry.Spawn(r.Traits.ToTraits(), 0, grid.Generation)
			if err := grid.SeedSpecies(sp, r.Population, parsePattern(*pattern)); err != nil {
				log.Printf("seeding %s: %v", r.Name, err)
			}
		}
	} else {
		grid.SetupZones(parseLayout(*layout))
		for i := 0; i < 3; i++ {
			sp := grid.Registry.Spawn(ecology.NewTraits(ecology.Traits{}), 0, 0)
			if err := grid.SeedSpecies(sp, *popSize, parsePattern(*pattern)); err != nil {
				log.Printf("seeding species %d: %v", sp.ID, err)
			}
		}
	}

	if *ticks > 0 {
		runBatch(grid, *ticks, metrics)
	} else {
		if err := runTUI(grid, metrics); err != nil {
			log.Fatalf("running interface: %v", err)
		}
	}

	if *saveState != "" {
		if err := ecology.NewStateManager(grid).SaveToFile(*saveState); err != nil {
			log.Fatalf("saving state: %v", err)
		}
	}
}

func runBatch(grid *ecology.Grid, ticks int, metrics *ecology.Metrics) {
	for i := 0; i < ticks; i++ {
		if _, err := grid.Step(); err != nil {
			log.Fatalf("step %d: %v", i, err)
		}
		if metrics != nil {
			metrics.Observe(grid.GetStats())
		}
	}
	stats := grid.GetStats()
	fmt.Printf("generation=%d population=%d species=%d births=%d deaths=%d mutations=%d avg_species_age=%.1f\n",
		stats.Generation, stats.Population, stats.SpeciesCount, stats.Births, stats.Deaths, stats.Mutations, stats.AvgSpeciesAge)
}

func runTUI(grid *ecology.Grid, metrics *ecology.Metrics) error {
	model := newModel(grid, metrics)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func parseLayout(s string) ecology.ZoneLayout {
	switch s {
	case "random":
		return ecology.LayoutRandom
	case "quadrant":
		return ecology.LayoutQuadrant
	case "ring":
		return ecology.LayoutRing
	default:
		return ecology.LayoutNeutral
	}
}

func parsePattern(s string) ecology.SeedPattern {
	switch s {
	case "center":
		return ecology.PatternCenter
	case "edge":
		return ecology.PatternEdge
	default:
		return ecology.PatternRandom
	}
}
