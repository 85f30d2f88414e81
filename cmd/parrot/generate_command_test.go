package main

import (
	"testing"

	"parrot/internal/cards"
	"parrot/internal/config"
)

func TestGenerateOptionsConfigDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Audio.Voice = "Joanna"
	cfg.Audio.Neural = true
	cfg.Output.Delimiter = "tab"
	cfg.Output.SkipExisting = true

	cmd := newGenerateCommand(newCommandContext(nil))
	opts, err := generateOptions(&cfg, cmd, []string{"src.csv", "dst.csv"}, "", "", false, false, false)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Source != "src.csv" || opts.Target != "dst.csv" {
		t.Fatalf("positional args not applied: %+v", opts)
	}
	if opts.Voice != "Joanna" || !opts.Neural {
		t.Fatalf("config audio defaults not applied: %+v", opts)
	}
	if opts.Delimiter != cards.Tab {
		t.Fatalf("config delimiter not applied: %+v", opts)
	}
	if !opts.SkipExisting {
		t.Fatalf("config skip_existing not applied: %+v", opts)
	}
}

func TestGenerateOptionsFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Audio.Voice = "Joanna"
	cfg.Audio.Neural = true
	cfg.Output.Delimiter = "tab"

	cmd := newGenerateCommand(newCommandContext(nil))
	if err := cmd.Flags().Set("neural", "false"); err != nil {
		t.Fatalf("set neural: %v", err)
	}
	if err := cmd.Flags().Set("tabs", "false"); err != nil {
		t.Fatalf("set tabs: %v", err)
	}

	opts, err := generateOptions(&cfg, cmd, []string{"src.csv", "dst.csv"}, "", "Lucia", false, false, false)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Voice != "Lucia" {
		t.Fatalf("voice flag should win: %+v", opts)
	}
	if opts.Neural {
		t.Fatalf("explicit --neural=false should override config: %+v", opts)
	}
	if opts.Delimiter != cards.Comma {
		t.Fatalf("explicit --tabs=false should force comma: %+v", opts)
	}
}
