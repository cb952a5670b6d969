// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command uidemo renders a sample view through any registered backend.
//
// The view holds a counter signal; each extra frame bumps the counter and
// re-renders through the reactive path. The last presented frame is
// written to -output ("-" for stdout).
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/gogpu/uicore"
	"github.com/gogpu/uicore/backend"
	_ "github.com/gogpu/uicore/backend/dom"
	_ "github.com/gogpu/uicore/backend/gpu"
	_ "github.com/gogpu/uicore/backend/raster"
	_ "github.com/gogpu/uicore/backend/term"
	"github.com/gogpu/uicore/config"
	"github.com/gogpu/uicore/env"
	"github.com/gogpu/uicore/geom"
	"github.com/gogpu/uicore/reactive"
	"github.com/gogpu/uicore/view"
	"github.com/gogpu/uicore/widget"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file")
		name       = flag.String("backend", "", "backend name (default: from config, else best available)")
		width      = flag.Int("width", 0, "viewport width (overrides config)")
		height     = flag.Int("height", 0, "viewport height (overrides config)")
		frames     = flag.Int("frames", 3, "number of counter frames to render")
		output     = flag.String("output", "uidemo.out", `output file, "-" for stdout`)
		list       = flag.Bool("list", false, "list registered backends and exit")
	)
	flag.Parse()

	if *list {
		for _, n := range backend.List() {
			e, _ := backend.Get(n)
			fmt.Printf("%-10s priority=%d available=%v\n", e.Name, e.Priority, e.Available())
		}
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *name != "" {
		cfg.Backend = *name
	}
	if *width > 0 {
		cfg.Viewport.Width = *width
	}
	if *height > 0 {
		cfg.Viewport.Height = *height
	}
	level, err := cfg.Level()
	if err != nil {
		log.Fatal(err)
	}
	uicore.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var frame bytes.Buffer
	opts := cfg.BackendOptions(&frame)
	if cfg.Backend == "dom" {
		if opts.Host, err = domHost(); err != nil {
			log.Fatal(err)
		}
	}
	var b backend.Backend
	if cfg.Backend == "" {
		b, err = backend.NewBest(opts)
	} else {
		b, err = backend.New(cfg.Backend, opts)
	}
	if err != nil {
		log.Fatalf("Failed to create backend: %v", err)
	}
	if err := b.Mount(); err != nil {
		log.Fatal(err)
	}

	e, err := cfg.Environment(nil)
	if err != nil {
		log.Fatal(err)
	}
	r := uicore.New(b)
	defer r.Close()

	count := reactive.NewSignal(0)
	var last []byte
	present := func(res backend.FrameResult, err error) {
		if err != nil {
			log.Fatalf("Failed to render: %v", err)
		}
		if res == backend.Presented {
			last = bytes.Clone(frame.Bytes())
		}
		frame.Reset()
	}

	present(r.RenderView(e, demo{count: count}))
	for i := 1; i < *frames; i++ {
		count.Update(func(n int) int { return n + 1 })
		present(r.Refresh(e))
	}

	if err := write(*output, last); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Rendered %d nodes, %d commands (%dx%d)\n",
		r.Tree().Len(), r.Scene().Len(), cfg.Viewport.Width, cfg.Viewport.Height)
}

// demo is a composite view: a title, a reactive counter and a colour bar.
type demo struct {
	count *reactive.Signal[int]
}

func (d demo) Body(*env.Environment) view.View {
	label := reactive.Map[int, string](d.count, func(n int) string {
		return fmt.Sprintf("frame %d", n)
	})
	bar := widget.HStack(
		widget.Fill(color.NRGBA{R: 0xea, G: 0x43, B: 0x35, A: 0xff}).Frame(40, 24),
		widget.Fill(color.NRGBA{R: 0xfb, G: 0xbc, B: 0x05, A: 0xff}).Frame(40, 24),
		widget.Fill(color.NRGBA{R: 0x34, G: 0xa8, B: 0x53, A: 0xff}).Frame(40, 24),
		widget.Spacer(),
	).Spacing(8)

	return widget.Padding(geom.UniformInsets(16), widget.VStack(
		widget.Text("uicore").Size(32),
		widget.Label(label),
		bar,
		widget.Spacer(),
	).Align(widget.AlignLeading).Spacing(12))
}

func domHost() (*html.Node, error) {
	doc, err := html.Parse(strings.NewReader("<!DOCTYPE html><html><body></body></html>"))
	if err != nil {
		return nil, err
	}
	// html > body
	return doc.LastChild.LastChild, nil
}

func write(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
