//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"sort"
	"strings"

	"github.com/scharlton2/modflowapi/internal/app"
	"github.com/scharlton2/modflowapi/internal/core"
	"github.com/scharlton2/modflowapi/internal/sims/gwf"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Hosts()[cfg.Model]
	if !ok {
		log.Fatalf("unknown model %q (available: %s)", cfg.Model, available())
	}
	host, err := factory(cfg.ModelParams())
	if err != nil {
		log.Fatal(err)
	}
	model, ok := host.(*gwf.Model)
	if !ok {
		log.Fatalf("model %q cannot be displayed", cfg.Model)
	}

	game := app.New(model, cfg)
	size := model.Size()

	ebiten.SetWindowTitle("gwf - " + model.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

func available() string {
	names := make([]string, 0, len(core.Hosts()))
	for name := range core.Hosts() {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
