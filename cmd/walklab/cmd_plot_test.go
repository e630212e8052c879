package main

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestPlotCommandWritesPage(t *testing.T) {
	root := t.TempDir()

	out, err := runCommand(t, root,
		"plot", "--steps", "50", "--trials", "30", "--paths", "3",
		"--counts", "10,20", "--seed", "11", "--json")
	if err != nil {
		t.Fatalf("plot: %v", err)
	}

	var got struct {
		Page string `json:"page"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("parse output: %v", err)
	}

	data, err := os.ReadFile(got.Page)
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	html := string(data)
	for _, want := range []string{"Sample paths", "Displacement distribution", "Diffusive scaling"} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing chart title %q", want)
		}
	}
}
