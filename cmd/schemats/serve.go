package main

import (
	"github.com/koustreak/schemats/internal/server"
)

// ServeCmd answers declaration requests over HTTP until interrupted.
type ServeCmd struct {
	GenerationFlags `embed:""`

	Addr string `short:"a" help:"Listen address (default :8080)"`
}

// Run executes the serve command
func (cmd *ServeCmd) Run(app *Context) error {
	cfg, err := loadConfig(app)
	if err != nil {
		return err
	}
	if err := cmd.GenerationFlags.apply(cfg); err != nil {
		return err
	}
	if cmd.Addr != "" {
		cfg.Server.Addr = cmd.Addr
	}

	log := newLogger(cfg)
	ctx := log.WithContext(app.ctx)

	conn, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	srv := server.New(server.Config{
		Addr:            cfg.Server.Addr,
		Provider:        conn,
		Options:         inferOptions(cfg),
		Logger:          log,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Ping:            conn.Ping,
	})
	log.Infof("listening on %s", cfg.Server.Addr)
	return srv.Serve(ctx)
}
