package main

import (
	"context"
	"cows-tsp/internal/adapters/report"
	"cows-tsp/internal/adapters/repositories"
	"cows-tsp/internal/app"
	"cows-tsp/internal/config"
	"cows-tsp/internal/domain"
	"cows-tsp/internal/platform/logging"
	"cows-tsp/internal/platform/obs"
	"cows-tsp/internal/services"
	"fmt"
	"io"
	"log"
	"os"
)

// main is the command-line composition root.
// It wires the point file, distance service, matrix store and annealer,
// then prints the tour to stdout. Any failure is fatal.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logCloser := logging.Setup(cfg.LogDir, "cowtour")
	defer logCloser.Close()

	ctx, runID := obs.WithRunID(context.Background())
	log.Printf("run_id=%s points=%s matrix_source=%s matrix_store=%s provider=%s",
		runID, cfg.PointsPath, cfg.MatrixSource, cfg.MatrixStore, cfg.Provider())

	if err := run(ctx, cfg, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config, out io.Writer) error {
	service, err := app.NewDistanceService(cfg)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	store, closer, err := app.NewMatrixStore(cfg)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	defer closer.Close()

	var assembler *services.MatrixAssembler
	if service != nil {
		assembler = services.NewMatrixAssembler(service)
	}

	plan, err := services.PlanTour(
		ctx,
		app.PlanRequest(cfg),
		repositories.NewTextPointRepository(cfg.PointsPath),
		assembler,
		store,
		services.NewSimulatedAnnealingSolver(app.CoolingRate),
	)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if err := printTour(out, plan); err != nil {
		return fmt.Errorf("run: print tour: %w", err)
	}

	if cfg.TourReportPath != "" {
		if err := report.WriteTourXLSX(cfg.TourReportPath, plan); err != nil {
			return fmt.Errorf("run: %w", err)
		}
		log.Printf("tour report written path=%s", cfg.TourReportPath)
	}

	return nil
}

// printTour writes one stop name per line, then the total distance.
func printTour(w io.Writer, plan *domain.TourPlan) error {
	for _, stop := range plan.Stops {
		if _, err := fmt.Fprintln(w, stop.Name); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d meters\n", plan.Tour.DistanceMeters)
	return err
}
