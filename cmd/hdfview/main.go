package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"hdfview/pkg/config"
	"hdfview/pkg/export"
	"hdfview/pkg/hdf"
	"hdfview/pkg/server"
)

const version = "1.3.0"

func main() {
	port := flag.Int("port", 8180, "Port to serve the viewer on")
	showVersion := flag.Bool("version", false, "Print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The flag wins only when passed explicitly; otherwise the settings
	// file decides.
	portSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "port" {
			portSet = true
		}
	})
	if !portSet {
		*port = cfg.Server.Port
	}
	export.JPEGQuality = cfg.Export.JpegQuality

	// Bind before starting anything: a taken port must not leave a
	// display loop running.
	ln, err := server.Listen(*port)
	if err != nil {
		fmt.Printf("Port %d is in use. Stop the other process or pass a "+
			"different --port.\n", *port)
		os.Exit(1)
	}

	srv := server.New(hdf.NewStore(), cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Reconciler().Run(ctx)

	fmt.Printf("hdfview running at http://localhost:%d\n", *port)
	if err := srv.Serve(ln); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
