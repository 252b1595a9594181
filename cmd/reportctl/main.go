package main

import (
	"context"
	"os"

	config "github.com/sgsc/sgsc-services/configs"
	"github.com/sgsc/sgsc-services/internal/apisvc/catalog"
	svcconfig "github.com/sgsc/sgsc-services/internal/apisvc/config"
	"github.com/sgsc/sgsc-services/internal/apisvc/db"
	"github.com/sgsc/sgsc-services/internal/apisvc/service"
	"github.com/sgsc/sgsc-services/internal/apisvc/store"
	"github.com/sgsc/sgsc-services/internal/refcache"
	"github.com/sgsc/sgsc-services/internal/report"
	"github.com/sgsc/sgsc-services/internal/reportctl"
	log "github.com/sirupsen/logrus"
)

func open(ctx context.Context) (*catalog.Catalog, func(), error) {
	cfg := svcconfig.Load()
	pool, err := db.Connect(cfg.DBUrl)
	if err != nil {
		return nil, nil, err
	}
	lookups := refcache.NewFetchers(refcache.New(), store.NewLookups(pool))
	gen := report.NewGenerator(report.WithLocation(cfg.Location()))
	return catalog.New(service.NewServices(pool, nil), lookups, gen), pool.Close, nil
}

func main() {
	log.SetOutput(os.Stderr)
	config.LoadEnv("reportctl")

	if err := reportctl.NewRootCommand(open).ExecuteContext(context.Background()); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
