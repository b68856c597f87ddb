package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"submission-routing-engine/internal/app"
	"submission-routing-engine/internal/config"
)

// buildApp loads configuration, applies flag overrides and wires the engine.
func buildApp(ctx context.Context, opts *rootOptions, topN int) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if opts.underwritersFile != "" {
		cfg.UnderwritersFile = opts.underwritersFile
	}
	if opts.timezone != "" {
		cfg.ScheduleTimezone = opts.timezone
	}
	if topN > 0 {
		cfg.RoutingTopN = topN
	}

	appOpts := []app.Option{app.WithoutStorage()}
	if !opts.useDatabase {
		appOpts = append(appOpts, app.WithoutDatabase())
	}
	if opts.now != "" {
		now, err := time.Parse(time.RFC3339, opts.now)
		if err != nil {
			return nil, fmt.Errorf("invalid --now %q: %w", opts.now, err)
		}
		appOpts = append(appOpts, app.WithClock(func() time.Time { return now }))
	}

	return app.New(ctx, cfg, appOpts...)
}

// readJSONFile decodes a JSON file, or stdin when path is "-".
func readJSONFile(path string, stdin io.Reader, v interface{}) error {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
