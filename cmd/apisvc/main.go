package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	"github.com/nats-io/nats.go"

	config "github.com/sgsc/sgsc-services/configs"
	"github.com/sgsc/sgsc-services/internal/apisvc/broker"
	"github.com/sgsc/sgsc-services/internal/apisvc/catalog"
	svcconfig "github.com/sgsc/sgsc-services/internal/apisvc/config"
	"github.com/sgsc/sgsc-services/internal/apisvc/db"
	handlers "github.com/sgsc/sgsc-services/internal/apisvc/handlers"
	"github.com/sgsc/sgsc-services/internal/apisvc/live"
	"github.com/sgsc/sgsc-services/internal/apisvc/service"
	"github.com/sgsc/sgsc-services/internal/apisvc/store"
	"github.com/sgsc/sgsc-services/internal/audit"
	"github.com/sgsc/sgsc-services/internal/auth"
	"github.com/sgsc/sgsc-services/internal/comm"
	mongodb "github.com/sgsc/sgsc-services/internal/db"
	"github.com/sgsc/sgsc-services/internal/evidence"
	natsconn "github.com/sgsc/sgsc-services/internal/nats"
	"github.com/sgsc/sgsc-services/internal/refcache"
	"github.com/sgsc/sgsc-services/internal/report"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "api"

var instanceId string

func init() {
	config.Logging(SERVICE_NAME + "_service")
	config.LoadEnv(SERVICE_NAME)
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
}

func main() {
	cfg := svcconfig.Load()

	// pg connection
	dbpool, err := db.Connect(cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	// reference cache
	cache := refcache.New()
	lookups := refcache.NewFetchers(cache, store.NewLookups(dbpool))
	hub := live.NewHub()

	// optional: audit trail
	var recorder audit.Recorder = audit.Nop{}
	if cfg.MongoURI != "" {
		mdb, err := mongodb.ConnectToDB(cfg.MongoURI)
		if err != nil {
			log.Warnf("audit trail disabled, unable to connect to MongoDB: %v", err)
		} else {
			defer mongodb.Disconnect(mdb)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := mongodb.CreateTTLIndexForCollection(ctx, mdb, audit.Collection); err != nil {
				log.Warnf("unable to create TTL index on %s: %v", audit.Collection, err)
			}
			cancel()
			recorder = audit.NewMongoRecorder(mdb.Collection(audit.Collection), audit.DefaultRetention)
			log.Printf("MongoDB connection established successfully")
		}
	}

	// optional: peer instances over NATS
	var conn *nats.Conn
	if cfg.NatsURL != "" {
		n, err := natsconn.Connect(cfg.NatsURL, cfg.NatsToken, SERVICE_NAME+"-"+instanceId)
		if err != nil {
			log.Warnf("running standalone, unable to connect to NATS server: %v", err)
		} else {
			defer n.Close()
			conn = n.Conn
			log.Printf("NATS connection established successfully %s", n.Url)
		}
	}
	peers := broker.NewBroker(conn, instanceId, cache, hub)
	if conn != nil {
		sub, err := peers.Subscribe(comm.RecordsTopic)
		if err != nil {
			log.Fatalf("Error: unable to subscribe to %s: %v", comm.RecordsTopic, err)
		}
		defer sub.Unsubscribe()
	}

	notifier := service.NewNotifier(cache, hub, peers, recorder)
	services := service.NewServices(dbpool, notifier)

	// optional: evidence images
	images, err := evidence.New(context.Background(), evidence.Config{
		Bucket:    cfg.Evidence.Bucket,
		Endpoint:  cfg.Evidence.Endpoint,
		Region:    cfg.Evidence.Region,
		PublicURL: cfg.Evidence.PublicURL,
	})
	if err != nil {
		log.Warnf("evidence uploads disabled: %v", err)
	}
	evidenceSvc := service.NewEvidenceService(images, notifier).
		Register("incidencia", store.NewIncidentStore(dbpool)).
		Register("voucher", store.NewVoucherStore(dbpool))

	gen := report.NewGenerator(report.WithLocation(cfg.Location()))
	authClient := auth.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, nil)

	go lookups.Preload(context.Background())

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(handlers.Deps{
		Catalog:      catalog.New(services, lookups, gen),
		Lookups:      lookups,
		Dashboard:    service.NewDashboardService(store.NewDashboardStore(dbpool), cfg.Location()),
		Registration: service.NewRegistrationService(authClient, store.NewPersonnelStore(dbpool), notifier),
		Evidence:     evidenceSvc,
		Audit:        recorder,
		Live:         hub.HandleWebSocket,
		JWTSecret:    cfg.JWTSecret,
		Port:         cfg.Port,
	})
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
