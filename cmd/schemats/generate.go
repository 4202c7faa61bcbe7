package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/koustreak/schemats/internal/config"
	"github.com/koustreak/schemats/internal/filestore"
	"github.com/koustreak/schemats/internal/infer"
)

// GenerateCmd renders one table or a whole schema.
type GenerateCmd struct {
	GenerationFlags `embed:""`

	Table   string        `short:"t" help:"Render only this table"`
	Output  string        `short:"o" help:"Destination: - for stdout, a file path, or s3://bucket/key"`
	Presign time.Duration `help:"After uploading to s3://, print a GET URL valid for this long"`
}

// resolve merges flags into cfg and checks combinations that only make
// sense for generate.
func (cmd *GenerateCmd) resolve(cfg *config.Config) error {
	if err := cmd.GenerationFlags.apply(cfg); err != nil {
		return err
	}
	if cmd.Table != "" {
		cfg.Table = cmd.Table
	}
	if cmd.Output != "" {
		cfg.Output = cmd.Output
	}
	if cfg.Table != "" && cfg.Aggregate {
		return ErrTableWithAggregate
	}
	return cfg.Validate()
}

// Run executes the generate command
func (cmd *GenerateCmd) Run(app *Context) error {
	cfg, err := loadConfig(app)
	if err != nil {
		return err
	}
	if err := cmd.resolve(cfg); err != nil {
		return err
	}

	target, err := filestore.ParseTarget(cfg.Output)
	if err != nil {
		return err
	}
	if cmd.Presign > 0 && target.Kind != filestore.TargetObject {
		return ErrPresignNeedsObject
	}

	log := newLogger(cfg)
	ctx := log.WithContext(app.ctx)

	conn, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	opts := inferOptions(cfg)
	var res *infer.Result
	if cfg.Table != "" {
		res, err = infer.Table(ctx, conn, cfg.Table, opts)
	} else {
		res, err = infer.Schema(ctx, conn, opts)
	}
	if err != nil {
		return err
	}

	var store filestore.Store
	openStore := func(ctx context.Context) (filestore.Store, error) {
		s, err := storageOpener(cfg)(ctx)
		store = s
		return s, err
	}
	sink, err := filestore.Open(ctx, target, os.Stdout, openStore, objectMetadata(cfg, conn.DefaultSchema()))
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}
	if err := sink.Write(ctx, res.Code); err != nil {
		return err
	}

	log.InfoWith("declarations written", map[string]any{
		"target":   target.String(),
		"warnings": len(res.Warnings),
	})

	if cmd.Presign > 0 && store != nil {
		url, err := store.PresignGet(ctx, target.Bucket, target.Key, cmd.Presign)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, url)
	}
	return nil
}

// objectMetadata labels uploaded declarations with their origin.
func objectMetadata(cfg *config.Config, defaultSchema string) map[string]string {
	meta := map[string]string{"generator": "schemats " + version}
	if cfg.Schema != "" {
		meta["schema"] = cfg.Schema
	} else if defaultSchema != "" {
		meta["schema"] = defaultSchema
	}
	if cfg.Table != "" {
		meta["table"] = cfg.Table
	}
	return meta
}
