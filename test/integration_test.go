// ABOUTME: Integration tests for swim CLI.
// ABOUTME: Builds the binary and drives a full workflow against sqlite.
package test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	swimBinary := filepath.Join(projectRoot, "swim")

	buildCmd := exec.Command("go", "build", "-o", swimBinary, "./cmd/swim")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	defer os.Remove(swimBinary)

	tmpDir := t.TempDir()
	env := append(os.Environ(),
		"XDG_DATA_HOME="+filepath.Join(tmpDir, "data"),
		"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
		"SWIM_BACKEND=sqlite",
	)

	run := func(args ...string) (string, error) {
		cmd := exec.Command(swimBinary, args...)
		cmd.Env = env
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// First run seeds sample data
	output, err := run("init")
	if err != nil {
		t.Fatalf("Failed to init: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Seeded sample data") {
		t.Errorf("Expected seeding on first run, got: %s", output)
	}

	output, err = run("records")
	if err != nil {
		t.Fatalf("Failed to show records: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Kniha rekordů") {
		t.Errorf("Expected records title, got: %s", output)
	}

	// Pick a segment from the JSON export
	output, err = run("export", "json")
	if err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}
	var exported struct {
		Segments []struct {
			ID             string `json:"id"`
			DistanceMeters int    `json:"distanceMeters"`
		} `json:"segments"`
	}
	if err := json.Unmarshal([]byte(output), &exported); err != nil {
		t.Fatalf("Export is not JSON: %v", err)
	}
	if len(exported.Segments) == 0 {
		t.Fatal("Expected seeded segments in export")
	}
	segID := exported.Segments[0].ID

	output, err = run("segment", segID[:8])
	if err != nil {
		t.Fatalf("Failed to show segment: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Laps:") {
		t.Errorf("Expected laps in segment output, got: %s", output)
	}

	output, err = run("style", segID[:8], "butterfly")
	if err != nil {
		t.Fatalf("Failed to change style: %v\n%s", err, output)
	}
	if !strings.Contains(output, "is now") {
		t.Errorf("Expected style confirmation, got: %s", output)
	}

	if output, err = run("style", segID[:8], "sidestroke"); err == nil {
		t.Errorf("Expected unknown style to fail, got: %s", output)
	}

	output, err = run("recalc")
	if err != nil {
		t.Fatalf("Failed to recalc: %v\n%s", err, output)
	}

	output, err = run("settings", "set", "--name", "Jana")
	if err != nil {
		t.Fatalf("Failed to set settings: %v\n%s", err, output)
	}
	output, err = run("settings", "show")
	if err != nil || !strings.Contains(output, "Jana") {
		t.Errorf("Expected updated name, got: %s (%v)", output, err)
	}
}
