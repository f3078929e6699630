// Command vrpsolve runs the VRP-STW-ST search engine against an instance
// file and optionally synthesizes soft time windows for instances that
// don't yet carry them.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"vrpstw/internal/cache"
	"vrpstw/internal/config"
	"vrpstw/internal/history"
	"vrpstw/internal/instance"
	"vrpstw/internal/logger"
	"vrpstw/internal/metrics"
	"vrpstw/internal/report"
	"vrpstw/internal/vrp"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "solve":
		err = runSolve(os.Args[2:])
	case "synth-windows":
		err = runSynthWindows(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "vrpsolve: unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "vrpsolve: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: vrpsolve <solve|synth-windows> [flags]

  solve -instance PATH [-variant heuristic|bra|simheuristic] [-format csv|json|markdown|excel]
        [-output PATH] [-metrics-addr ADDR] [-history]

  synth-windows -instance PATH [-vehicles N] [-window W] [-seed N]`)
}

func runSolve(args []string) error {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	instancePath := fs.String("instance", "", "path to the instance file")
	variantName := fs.String("variant", "simheuristic", "heuristic, bra, or simheuristic")
	format := fs.String("format", "", "csv, json, markdown, or excel (default from config)")
	output := fs.String("output", "", "output file path (default stdout)")
	metricsAddr := fs.String("metrics-addr", "", "expose Prometheus metrics on this address")
	persistHistory := fs.Bool("history", false, "persist this run via internal/history")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *instancePath == "" {
		return fmt.Errorf("-instance is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.InitWithConfig(logger.Config{
		Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output,
		FilePath: cfg.Log.FilePath, MaxSize: cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups, MaxAge: cfg.Log.MaxAge, Compress: cfg.Log.Compress,
	})

	variant, err := parseVariant(*variantName)
	if err != nil {
		return err
	}

	nodes, err := instance.ParseFile(*instancePath)
	if err != nil {
		return fmt.Errorf("parse instance: %w", err)
	}
	graph := vrp.BuildGraph(nodes, cfg.Search.PVariance)

	var solutionCache cache.Cache
	var cacheKey string
	if cfg.Cache.Enabled {
		solutionCache = cache.New(&cache.Options{MaxEntries: cfg.Cache.MaxEntries, DefaultTTL: cfg.Cache.DefaultTTL})
		cacheKey = cache.SolutionKey(
			cache.InstanceHash(instanceNodes(nodes), cfg.Search.NVehicles, cfg.Search.MaxTravelTime, cfg.Search.PVariance, cfg.Search.SeedSearch, cfg.Search.SeedSim),
			*variantName,
		)
		if cached, err := solutionCache.Get(context.Background(), cacheKey); err == nil {
			logger.Info("solution cache hit, skipping search", "key", cacheKey)
			return emitCachedReport(cached, *format, cfg.Report.DefaultFormat, *output)
		}
	}

	var m *metrics.Metrics
	if *metricsAddr != "" || cfg.Metrics.Enabled {
		m = metrics.Init(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
		addr := *metricsAddr
		if addr == "" {
			addr = cfg.Metrics.Addr
		}
		go serveMetrics(addr)
	}

	driverCfg := vrp.DriverConfig{
		K:              cfg.Search.NVehicles,
		TMax:           cfg.Search.MaxTravelTime,
		BetaMin:        cfg.Search.BetaMin,
		BetaMax:        cfg.Search.BetaMax,
		MaxIter:        cfg.Search.MaxIter,
		NElites:        cfg.Search.NElites,
		SimTrialsInner: cfg.Search.SimTrialsInner,
		SimTrialsFinal: cfg.Search.SimTrialsFinal,
		PVariance:      cfg.Search.PVariance,
		GammaStep:      cfg.Search.GammaStep,
		GammaMaxSteps:  cfg.Search.GammaMaxSteps,
		SeedSearch:     cfg.Search.SeedSearch,
		SeedSim:        cfg.Search.SeedSim,
	}

	driver := vrp.NewDriver(graph, driverCfg, variant, m)

	logger.Info("starting search", "variant", *variantName, "instance", *instancePath)
	start := time.Now()
	res, err := driver.Run(context.Background())
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	logger.Info("search finished",
		"iterations", res.Iterations,
		"deterministic_cost", res.Best.DeterministicCost(),
		"elapsed", elapsed,
	)

	if *persistHistory {
		if err := recordHistory(cfg, *instancePath, *variantName, driverCfg, res, elapsed); err != nil {
			logger.Warn("failed to persist history", "error", err)
		}
	}

	data := report.FromResult(res, *variantName, cfg.Search.SeedSearch, res.Best.ID.String(), time.Now())
	if solutionCache != nil {
		if encoded, err := json.Marshal(data); err != nil {
			logger.Warn("failed to encode solution for cache", "error", err)
		} else if err := solutionCache.Set(context.Background(), cacheKey, encoded, cfg.Cache.DefaultTTL); err != nil {
			logger.Warn("failed to populate solution cache", "error", err)
		}
	}

	return renderReport(data, *format, cfg.Report.DefaultFormat, *output)
}

// instanceNodes projects nodes down to the minimal fields cache.InstanceHash needs.
func instanceNodes(nodes []*vrp.Node) []cache.InstanceNode {
	out := make([]cache.InstanceNode, len(nodes))
	for i, n := range nodes {
		out[i] = cache.InstanceNode{ID: n.ID, X: n.X, Y: n.Y, Close: n.Close, Demand: n.Demand}
	}
	return out
}

// emitCachedReport renders a report.Data encoding previously stored in the
// solution cache, skipping the search driver entirely.
func emitCachedReport(encoded []byte, format, defaultFormat, output string) error {
	var data report.Data
	if err := json.Unmarshal(encoded, &data); err != nil {
		return fmt.Errorf("decode cached solution: %w", err)
	}
	return renderReport(&data, format, defaultFormat, output)
}

func renderReport(data *report.Data, format, defaultFormat, output string) error {
	if format == "" {
		format = defaultFormat
	}
	gen, err := report.New(format)
	if err != nil {
		return err
	}

	out, err := gen.Generate(data)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	if output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(output, out, 0o644)
}

func parseVariant(name string) (vrp.Variant, error) {
	switch name {
	case "heuristic":
		return vrp.VariantHeuristic, nil
	case "bra":
		return vrp.VariantBRA, nil
	case "simheuristic":
		return vrp.VariantSimheuristic, nil
	default:
		return 0, fmt.Errorf("unknown variant %q (want heuristic, bra, or simheuristic)", name)
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn("metrics server stopped", "error", err)
	}
}

func recordHistory(cfg *config.Config, instancePath, variantName string, driverCfg vrp.DriverConfig, res *vrp.Result, elapsed time.Duration) error {
	repo, closeFn, err := openHistoryRepository(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	run := &history.SearchRun{
		InstancePath:      instancePath,
		Variant:           variantName,
		SeedSearch:        driverCfg.SeedSearch,
		SeedSim:           driverCfg.SeedSim,
		NVehicles:         driverCfg.K,
		Iterations:        res.Iterations,
		Gamma:             res.Gamma,
		DeterministicCost: res.Best.DeterministicCost(),
		ElapsedMs:         float64(elapsed.Microseconds()) / 1000,
	}
	if cost, ok := res.Best.CachedStochasticCost(); ok {
		run.StochasticCost = &cost
	}

	return repo.Create(context.Background(), run)
}

func openHistoryRepository(cfg *config.Config) (history.Repository, func(), error) {
	if !cfg.History.Enabled || cfg.History.Driver != "postgres" {
		return history.NewMemoryRepository(), func() {}, nil
	}

	ctx := context.Background()
	db, err := history.NewPostgresDB(ctx, cfg.History.DSN())
	if err != nil {
		return nil, nil, err
	}
	if cfg.History.AutoMigrate {
		if err := history.Migrate(ctx, db.Pool()); err != nil {
			db.Close()
			return nil, nil, err
		}
	}
	return history.NewPostgresRepository(db), func() { db.Close() }, nil
}

func runSynthWindows(args []string) error {
	fs := flag.NewFlagSet("synth-windows", flag.ExitOnError)
	instancePath := fs.String("instance", "", "path to the instance file to rewrite in place")
	nVehicles := fs.Int("vehicles", 5, "number of clusters to split customers into")
	window := fs.Float64("window", 100, "time window width centered on each node's arrival time")
	seed := fs.Int64("seed", 1, "shuffle seed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *instancePath == "" {
		return fmt.Errorf("-instance is required")
	}

	nodes, err := instance.ParseFile(*instancePath)
	if err != nil {
		return fmt.Errorf("parse instance: %w", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	open := instance.SynthesizeWindows(nodes, *nVehicles, *window, rng)

	if err := instance.WriteFile(*instancePath, nodes, open); err != nil {
		return fmt.Errorf("write instance: %w", err)
	}
	fmt.Printf("synthesized time windows for %d nodes into %s\n", len(nodes), *instancePath)
	return nil
}
