package main

import (
	"fmt"
	"log"

	"github.com/levinOo/homewizard-p1-exporter/internal/config"
	"github.com/levinOo/homewizard-p1-exporter/internal/service"
)

var (
	buildVersion string = "N/A"
	buildDate    string = "N/A"
	buildCommit  string = "N/A"
)

func main() {
	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	return service.Serve(cfg)
}
