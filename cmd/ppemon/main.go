package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/safevision/ppekit/config"
	"github.com/safevision/ppekit/detect"
	"github.com/safevision/ppekit/detect/yolo"
	"github.com/safevision/ppekit/metrics"
	"github.com/safevision/ppekit/monitor"
	"github.com/safevision/ppekit/server"
)

func main() {

	mode := flag.String("mode", "", "Run mode: webcam or batch")
	configPath := flag.String("config", "", "Path to YAML config file, can also be set with PPE_CONFIG")
	flag.Parse()

	if *mode != "webcam" && *mode != "batch" {
		fmt.Fprintln(os.Stderr, "usage: ppemon -mode [webcam|batch] [-config path]")
		os.Exit(2)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(*configPath)

	if err != nil {
		log.WithError(err).Fatal("error loading configuration")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	labels, err := detect.LoadLabels(cfg.LabelsPath)

	if err != nil {
		log.WithError(err).Fatal("error loading model labels")
	}

	det, err := yolo.NewDetector(cfg.ModelPath, labels, cfg.ConfThreshold,
		cfg.NMSThreshold, cfg.InputSize)

	if err != nil {
		log.WithError(err).Fatal("error loading detection model")
	}

	defer det.Close()

	met := metrics.NewManager()

	session := monitor.NewSession(cfg, det, met, log)
	defer session.Close()

	switch *mode {
	case "webcam":
		stream := server.NewStream()
		srv := server.New(stream, session.Status, met.Handler(), log)

		go func() {
			if err := srv.Run(cfg.Addr); err != nil {
				log.WithError(err).Fatal("http server failed")
			}
		}()

		log.Infof("open browser and view the stream at http://%s/stream", cfg.Addr)

		ctx, stop := signal.NotifyContext(context.Background(),
			os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := monitor.RunWebcam(ctx, cfg, session, stream, log); err != nil {
			log.WithError(err).Fatal("live monitoring failed")
		}

	case "batch":
		if err := monitor.RunBatch(cfg, session, log); err != nil {
			log.WithError(err).Fatal("batch run failed")
		}
	}
}
