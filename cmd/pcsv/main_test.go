package main

import (
	"context"
	"io"
	"testing"

	apppkg "github.com/kk-code-lab/pcsv/internal/app"
)

func parseArgs(t *testing.T, args ...string) (apppkg.Options, string, error) {
	t.Helper()
	var (
		got    apppkg.Options
		gotLog string
	)
	cmd := newRootCmd(func(ctx context.Context, opts apppkg.Options, logPath string) error {
		got = opts
		gotLog = logPath
		return nil
	})
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return got, gotLog, err
}

func TestDefaults(t *testing.T) {
	opts, logPath, err := parseArgs(t, "data.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := apppkg.Options{Path: "data.csv", MaxRows: defaultRows, Delimiter: ","}
	if opts != want {
		t.Fatalf("expected %+v, got %+v", want, opts)
	}
	if logPath != "" {
		t.Fatalf("expected no log path, got %q", logPath)
	}
}

func TestAllFlags(t *testing.T) {
	opts, logPath, err := parseArgs(t,
		"-n", "0", "-r", "-w", "120", "-d", ";", "--no-header",
		"-c", "/tmp/pcsv.yaml", "-p", "--log", "/tmp/pcsv.log", "data.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := apppkg.Options{
		Path:       "data.csv",
		MaxRows:    0,
		RowsSet:    true,
		RowNumbers: true,
		Width:      120,
		Delimiter:  ";",
		NoHeader:   true,
		ConfigPath: "/tmp/pcsv.yaml",
		Pager:      true,
	}
	if opts != want {
		t.Fatalf("expected %+v, got %+v", want, opts)
	}
	if logPath != "/tmp/pcsv.log" {
		t.Fatalf("unexpected log path %q", logPath)
	}
}

func TestColorschemeAlias(t *testing.T) {
	for _, args := range [][]string{
		{"--colorscheme", "/tmp/pcsv.toml", "data.csv"},
		{"--colorscheme=/tmp/pcsv.toml", "data.csv"},
		{"--config", "/tmp/pcsv.toml", "data.csv"},
	} {
		opts, _, err := parseArgs(t, args...)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", args, err)
		}
		if opts.ConfigPath != "/tmp/pcsv.toml" {
			t.Fatalf("%v: expected config path, got %q", args, opts.ConfigPath)
		}
	}
}

func TestArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no file", []string{}},
		{"two files", []string{"a.csv", "b.csv"}},
		{"negative rows", []string{"-n", "-1", "a.csv"}},
		{"negative width", []string{"-w", "-5", "a.csv"}},
		{"unknown flag", []string{"--bogus", "a.csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := parseArgs(t, tt.args...); err == nil {
				t.Fatalf("expected error for %v", tt.args)
			}
		})
	}
}
