package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestReplayWalkJump(t *testing.T) {
	var out bytes.Buffer
	if err := run(&out, "walk_jump.tengo", "touch", "level", 0); err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 240 {
		t.Fatalf("lines = %d, want the script's 240 ticks", len(lines))
	}
	if !strings.HasPrefix(lines[0], "1 pos=") {
		t.Fatalf("first line = %q", lines[0])
	}
	if !strings.Contains(out.String(), "jumped") {
		t.Fatalf("trace has no jump:\n%s", out.String())
	}
}

func TestReplayDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	if err := run(&a, "touch_drag.tengo", "touch", "level", 120); err != nil {
		t.Fatalf("run a: %v", err)
	}
	if err := run(&b, "touch_drag.tengo", "touch", "level", 120); err != nil {
		t.Fatalf("run b: %v", err)
	}
	if a.String() != b.String() {
		t.Fatalf("traces differ")
	}
}

func TestReplayNeedsTicks(t *testing.T) {
	if err := run(&bytes.Buffer{}, "missing.tengo", "", "level", 10); err == nil {
		t.Fatalf("missing script accepted")
	}
}
