package main

import (
	"cows-tsp/internal/adapters/repositories"
	"cows-tsp/internal/api"
	"cows-tsp/internal/app"
	"cows-tsp/internal/config"
	"cows-tsp/internal/platform/logging"
	"cows-tsp/internal/services"
	"log"
	"net/http"
	"time"
)

// main is the HTTP composition root.
// It wires the point file, distance service and matrix store behind ports and starts the server.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logCloser := logging.Setup(cfg.LogDir, "server")
	defer logCloser.Close()

	service, err := app.NewDistanceService(cfg)
	if err != nil {
		log.Fatal(err)
	}

	store, closer, err := app.NewMatrixStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	// Without credentials the server can still plan tours from a stored matrix.
	var assembler *services.MatrixAssembler
	if service != nil {
		assembler = services.NewMatrixAssembler(service)
	} else {
		log.Println("no distance service configured: POST /tour only accepts matrix_source=load")
	}

	points := repositories.NewTextPointRepository(cfg.PointsPath)
	router := api.NewRouter(points, assembler, store, app.PlanRequest(cfg), app.CoolingRate)

	// Timeouts are tuned for a cold fetch of the full matrix.
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      180 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
