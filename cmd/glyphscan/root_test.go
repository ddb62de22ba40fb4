package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestListEncodingsShortCircuits(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--list-encodings"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), "ascii") {
		t.Errorf("--list-encodings output missing %q:\n%s", "ascii", out.String())
	}
	if !strings.Contains(out.String(), "utf8") {
		t.Errorf("--list-encodings output missing %q:\n%s", "utf8", out.String())
	}
}

func TestVersionShortCircuits(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), "glyphscan") {
		t.Errorf("--version output missing program name:\n%s", out.String())
	}
}

func TestShowConfigShortCircuits(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--show-config", "--mission", "ascii,5", "--mission", "utf8,5"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "mission 0") || !strings.Contains(got, "mission 1") {
		t.Errorf("--show-config output missing both mission lines:\n%s", got)
	}
}

func TestBadMissionSpecIsConfigurationError(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--mission", "not-a-real-encoding", "-o", "-"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("Execute: want error for unknown encoding mission, got nil")
	}
	if exitCodeFor(err) != 2 {
		t.Errorf("exitCodeFor(%v) = %d, want 2 (configuration error)", err, exitCodeFor(err))
	}
}
