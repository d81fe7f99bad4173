package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	glog "github.com/labstack/gommon/log"

	"laborstats/internal/api"
	"laborstats/internal/config"
	"laborstats/internal/engine"
)

func main() {
	cfg := config.Load()

	// 1. Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(glog.INFO)
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	renderer, err := api.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	e.Renderer = renderer

	// 2. The handle loads lazily and picks up a rewritten file on the next request
	handle := engine.NewTableHandle(cfg.DataPath)
	if table, err := handle.Get(); err != nil {
		log.Printf("WARNING: %v. The dashboard will report it until the fetcher has run.", err)
	} else {
		log.Printf("Loaded %d rows from %s", table.Len(), cfg.DataPath)
	}

	h := api.NewHandler(handle)
	h.RegisterRoutes(e)

	// 3. Start Server
	log.Printf("Dashboard ready on %s", cfg.Server.Address())
	e.Logger.Fatal(e.Start(cfg.Server.Address()))
}
