package cmd

import (
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

func TestParseRendersStatement(t *testing.T) {
	dir := t.TempDir()
	writeStatement(t, dir, "2024-01.html", sampleStatement)

	cmd := &parseCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Parse([]string{filepath.Join(dir, "2024-01.html")})

	var status subcommands.ExitStatus
	out := captureStdout(t, func() { status = cmd.Execute(context.Background(), f) })

	if status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}
	for _, want := range []string{"Statement 100ABC", "Cash Flows", "Зачисление д/с"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not mention %q:\n%s", want, out)
		}
	}
}

func TestParseJSON(t *testing.T) {
	dir := t.TempDir()
	writeStatement(t, dir, "2024-01.html", sampleStatement)

	cmd := &parseCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Parse([]string{"-json", filepath.Join(dir, "2024-01.html")})

	var status subcommands.ExitStatus
	out := captureStdout(t, func() { status = cmd.Execute(context.Background(), f) })

	if status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}
	if got := strings.TrimSpace(out); strings.Contains(got, "\n") {
		t.Errorf("want a single JSON line, got:\n%s", out)
	}
	if !strings.Contains(out, `"accountId":"100ABC"`) {
		t.Errorf("JSON output misses the account id:\n%s", out)
	}
}

func TestParseRejectsMissingFile(t *testing.T) {
	cmd := &parseCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Parse([]string{filepath.Join(t.TempDir(), "absent.html")})

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitFailure {
		t.Errorf("Execute() = %v, want ExitFailure", status)
	}
}
