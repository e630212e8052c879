// Package store persists Monte Carlo runs and their displacement
// samples in SQLite.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/walklab/walklab/internal/walk"
)

// Run is the stored record of one completed ensemble.
type Run struct {
	ID           string                `json:"id"`
	CreatedAt    time.Time             `json:"created_at"`
	Steps        int                   `json:"steps"`
	Trials       int                   `json:"trials"`
	Seed         int64                 `json:"seed"`
	Source       string                `json:"source"`
	Distribution walk.StepDistribution `json:"distribution"`
	Mean         float64               `json:"mean"`
	StdDev       float64               `json:"std_dev"`
}

// Sample is one stored displacement sample.
type Sample struct {
	Trial        int     `json:"trial"`
	Displacement float64 `json:"displacement"`
	FinalX       int     `json:"final_x"`
	FinalY       int     `json:"final_y"`
}

// NewRunID derives a short stable identifier from the run's defining
// parameters and creation time.
func NewRunID(steps, trials int, seed int64, createdAt time.Time) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%d|%d|%d|%d", steps, trials, seed, createdAt.UnixNano())))
	return hex.EncodeToString(h[:])[:12]
}
