package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"

	"twiga-dash/internal/client"
	"twiga-dash/internal/server"
)

// Variables to hold flag values
var (
	dashServer    string
	dashListen    string
	serviceAction string // "install", "uninstall", "start", "stop"
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	exit   chan struct{}
	server *http.Server
	cfg    server.Config
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	p.exit = make(chan struct{})
	go p.run()
	return nil
}

func (p *program) run() {
	dash, err := server.New(p.cfg)
	if err != nil {
		log.Printf("Fatal: %v", err)
		os.Exit(1)
	}

	p.server = &http.Server{
		Addr:    p.cfg.Listen,
		Handler: dash.Handler(),
	}

	log.Printf("Twiga dashboard listening on %s (upstream %s)", p.cfg.Listen, p.cfg.Server)

	// Blocking call to listen
	if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("HTTP Server error: %v", err)
	}
}

func (p *program) Stop(s service.Service) error {
	// Stop should not block. Signal the app to stop.
	log.Println("Stopping service...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}
	}
	close(p.exit)
	return nil
}

// --- COMMAND ---

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve the monitoring web dashboard",
	Long: `Starts a long-running HTTP server with the NW Namibia monitoring
dashboard and a Prometheus /metrics endpoint. Can be installed as a
system service.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := server.Config{
			Server: strings.TrimRight(dashServer, "/"),
			Listen: dashListen,
		}

		svcConfig := &service.Config{
			Name:        "twiga-dashboard",
			DisplayName: "Twiga Monitoring Dashboard",
			Description: "Serves the GCF NW Namibia giraffe monitoring dashboard",
			Arguments: []string{
				"dashboard",
				"--server", dashServer,
				"--listen", dashListen,
			},
		}

		prg := &program{cfg: cfg}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			log.Fatal(err)
		}

		// Handle Service Control Actions (Install, Start, Stop, Uninstall)
		if serviceAction != "" {
			err = service.Control(s, serviceAction)
			if err != nil {
				log.Fatalf("Failed to %s service: %v", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// Run the Service (Blocking)
		logger, err := s.Logger(nil)
		if err != nil {
			log.Fatal(err)
		}
		if err = s.Run(); err != nil {
			logger.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)

	dashboardCmd.Flags().StringVar(&dashServer, "server", client.DefaultServer, "EarthRanger server URL")
	dashboardCmd.Flags().StringVar(&dashListen, "listen", ":8080", "HTTP listen address")
	dashboardCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
