package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/platebench/platebench/internal/api"
	"github.com/platebench/platebench/internal/session"
	"github.com/platebench/platebench/internal/version"
)

var (
	listen      = flag.String("listen", ":8080", "Listen address")
	theme       = flag.String("theme", "nature", "Default color theme")
	gradient    = flag.String("gradient", "high_contrast", "Default group color gradient")
	seed        = flag.Int64("seed", 0, "Random seed for reproducible layouts (0 uses the clock)")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("platebench %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	s := session.New()
	if err := s.SetTheme(*theme); err != nil {
		log.Fatalf("unknown theme %q: %v", *theme, err)
	}
	if err := s.SetGradient(*gradient); err != nil {
		log.Fatalf("unknown gradient %q: %v", *gradient, err)
	}

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mux := api.NewServer(s, rng).ServeMux()

	server := &http.Server{
		Addr:    *listen,
		Handler: api.LoggingMiddleware(mux),
	}

	// Start server in a goroutine so it doesn't block
	go func() {
		log.Printf("platebench %s listening on %s", version.Version, *listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for context cancellation to shut down server
	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		os.Exit(1)
	}
}
