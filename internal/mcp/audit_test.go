package mcp

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAuditLoggerRecords(t *testing.T) {
	root := t.TempDir()
	l := NewAuditLogger(root)
	if l == nil {
		t.Fatal("NewAuditLogger returned nil")
	}
	defer l.Close()

	l.Record("simulate_walk", time.Now(), nil, map[string]string{"steps": "100"})
	l.Record("run_ensemble", time.Now(), errors.New("boom"), nil)

	f, err := os.Open(filepath.Join(root, ".walklab", "audit.jsonl"))
	if err != nil {
		t.Fatalf("open audit log: %v", err)
	}
	defer f.Close()

	var entries []AuditEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e AuditEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("parse entry: %v", err)
		}
		entries = append(entries, e)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Tool != "simulate_walk" || entries[0].Status != "success" {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[0].Params["steps"] != "100" {
		t.Errorf("first entry params = %v", entries[0].Params)
	}
	if entries[1].Status != "error" || entries[1].Error != "boom" {
		t.Errorf("second entry = %+v", entries[1])
	}
}

func TestAuditLoggerNilSafe(t *testing.T) {
	var l *AuditLogger
	l.Record("simulate_walk", time.Now(), nil, nil)
	if err := l.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}
