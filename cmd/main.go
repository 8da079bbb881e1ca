package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joejoe-am/routego/configs"
	"github.com/joejoe-am/routego/pkg/router"
	"github.com/joejoe-am/routego/pkg/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

func main() {
	cfg := configs.GetConfigs()
	setupLogger(cfg.LogLevel)

	r := router.New()
	r.RedirectTrailingSlash = configs.FlagOrDefault(cfg.Router.RedirectTrailingSlash)
	r.RedirectFixedPath = configs.FlagOrDefault(cfg.Router.RedirectFixedPath)
	r.HandleMethodNotAllowed = configs.FlagOrDefault(cfg.Router.HandleMethodNotAllowed)
	r.HandleOPTIONS = configs.FlagOrDefault(cfg.Router.HandleOPTIONS)
	r.Metrics = router.NewMetrics(prometheus.DefaultRegisterer)

	metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())

	r.Get("/health", func(ctx *fasthttp.RequestCtx, _ router.Params) {
		ctx.WriteString("OK")
	})
	r.Get("/hello/:name", func(ctx *fasthttp.RequestCtx, ps router.Params) {
		fmt.Fprintf(ctx, "hello, %s!\n", ps.ByName("name"))
	})
	r.Get("/metrics", func(ctx *fasthttp.RequestCtx, _ router.Params) {
		metricsHandler(ctx)
	})

	server := web.New(r, web.Config{Name: cfg.ServerName})

	go func() {
		log.Infof("listening on %s", cfg.ListenAddr)
		if err := server.Listen(cfg.ListenAddr); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down server")
	if err := server.Shutdown(); err != nil {
		log.Errorf("shutdown error: %v", err)
	}
}

// Configure logging
func setupLogger(level string) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}
