package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/darksidegamer16/3ofspades-multiplayer/internal/server"
)

var (
	Version   string = "unknown"
	GitCommit string = "unknown"
	BuildAt   string = "unknown"
)

func main() {
	app := cli.NewApp()
	app.Name = "3ofspades-server"
	app.Version = Version
	app.Flags = []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "path to config file"},
		&cli.StringFlag{Name: "addr", Usage: "listen address (overrides config)"},
	}
	app.Action = RealMain
	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func RealMain(c *cli.Context) error {
	cfg, err := server.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if addr := c.String("addr"); addr != "" {
		cfg.Addr = addr
	}

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	hub := server.NewHub(cfg, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWS)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Serve frontend build with SPA fallback
	webDist := cfg.WebDist
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(webDist, filepath.Clean(r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(webDist, "index.html"))
	}))

	log.WithFields(logrus.Fields{"addr": cfg.Addr, "commit": GitCommit, "buildAt": BuildAt}).Info("listening")
	return http.ListenAndServe(cfg.Addr, mux)
}
