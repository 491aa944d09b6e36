package app

import (
	"flag"
	"testing"
)

func TestBindAndModelParams(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("gwf", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-model", "perimeter", "-rows", "20", "-hk", "2.5", "-rate", "4"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "perimeter" || cfg.Rate != 4 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	params := cfg.ModelParams()
	if params["rows"] != "20" || params["hk"] != "2.5" {
		t.Fatalf("unexpected params %v", params)
	}
	if _, ok := params["cols"]; ok {
		t.Fatal("unset overrides must not be forwarded")
	}
}

func TestSetOverrides(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("gwf", flag.ContinueOnError)
	cfg.Bind(fs)
	args := []string{"-set", "ss=1e-5", "-set", "head_high = 30", "-set", "broken", "-set", "hk=1", "-hk", "4"}
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	params := cfg.ModelParams()
	if params["ss"] != "1e-5" {
		t.Fatalf("ss override lost: %v", params)
	}
	if params["head_high"] != "30" {
		t.Fatalf("head_high = %q", params["head_high"])
	}
	if params["hk"] != "4" {
		t.Fatalf("explicit -hk should win, got %q", params["hk"])
	}
	if len(params) != 3 {
		t.Fatalf("unexpected params %v", params)
	}
}
