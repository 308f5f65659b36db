package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/df07/go-raycast-tracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	sceneDir := flag.String("scenes", "scenes", "Directory holding JSON scene files")
	maxRenders := flag.Int("max-renders", max(1, runtime.NumCPU()/4), "Maximum number of concurrent renders")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port, *sceneDir, *maxRenders)

	log.Printf("Raycast Tracer Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
