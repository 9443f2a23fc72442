package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/bajakarsa/bilahstore/config"
	"github.com/bajakarsa/bilahstore/internal/adminapi"
	"github.com/bajakarsa/bilahstore/internal/app"
	"github.com/bajakarsa/bilahstore/internal/publicapi"
	"github.com/bajakarsa/bilahstore/internal/webserver"
)

var (
	configFile = flag.String("c", "bilahstore.yml", "config file")
	showVer    = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()
	if *showVer {
		fmt.Println("bilahstore", version)
		return
	}

	_ = godotenv.Load()
	cfg := config.LoadConfig(*configFile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	webserver.Init(application)
	adminapi.InitRouter()
	publicapi.InitRouter()

	go func() {
		if err := webserver.Listen(); err != nil {
			zap.L().Error("web server stopped", zap.Error(err))
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	zap.L().Info("shutting down")
	_ = webserver.Shutdown()
}
