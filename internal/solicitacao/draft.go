// internal/solicitacao/draft.go
//
// The Draft is the shared wizard state: one partial request mutated by each
// step and read in full by the summary. It performs no validation of its own;
// steps validate before calling Update. The draft is also autosaved to disk
// (the RASCUNHO of the status vocabulary) so an interrupted wizard can be
// resumed.

package solicitacao

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// SeedFunc produces the defaults a fresh draft starts from; the requester
// fields come from the logged-in session when one exists.
type SeedFunc func() Solicitacao

// Draft holds the request-in-progress.
type Draft struct {
	mu   sync.Mutex
	cur  Solicitacao
	seed SeedFunc
	path string
}

// NewDraft creates a draft seeded from seed, autosaved to path. An empty
// path disables autosave.
func NewDraft(seed SeedFunc, path string) *Draft {
	if seed == nil {
		seed = func() Solicitacao { return Solicitacao{} }
	}
	d := &Draft{seed: seed, path: path}
	d.cur = seed()
	return d
}

// Update shallow-merges the patch into the draft; last write per field wins.
func (d *Draft) Update(p Patch) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p.Apply(&d.cur)
	d.saveLocked()
}

// Reset reinitializes the draft to the session-seeded defaults and removes
// the autosave file.
func (d *Draft) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cur = d.seed()
	if d.path != "" {
		_ = os.Remove(d.path)
	}
}

// Current returns a copy of the request-in-progress.
func (d *Draft) Current() Solicitacao {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cur
}

// Restore loads a previously autosaved draft over the seeded defaults.
// A missing file is not an error; a corrupt file is discarded.
func (d *Draft) Restore() error {
	if d.path == "" {
		return nil
	}
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("draft: read %s: %w", d.path, err)
	}
	var saved Solicitacao
	if err := yaml.Unmarshal(data, &saved); err != nil {
		_ = os.Remove(d.path)
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cur = saved
	return nil
}

// saveLocked persists the current draft; autosave failures are non-fatal,
// the draft stays usable in memory.
func (d *Draft) saveLocked() {
	if d.path == "" {
		return
	}
	data, err := yaml.Marshal(d.cur)
	if err != nil {
		return
	}
	_ = os.WriteFile(d.path, data, 0o600)
}
