package main

import (
	"testing"

	"kithara/internal/testsupport"
)

func TestDepsCommandWithStubbedBinaries(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedBinaries())

	out, err := runCLI(t, []string{"deps"}, env.configPath)
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	requireContains(t, out, "vgmstream")
	requireContains(t, out, "FFmpeg")
	requireContains(t, out, "FFprobe")
	requireContains(t, out, "found")
}

func TestDepsCommandReportsMissingBinaries(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Tools.Vgmstream = "definitely-not-a-real-binary"
	writeTestConfig(t, env.configPath, env.cfg)

	out, err := runCLI(t, []string{"deps"}, env.configPath)
	if err == nil {
		t.Fatal("expected error when a tool is missing")
	}
	requireContains(t, out, "not found")
}
