package fetch

import (
	"sync"

	"github.com/bookhive/bookhive/internal/model"
)

// Key identifies one resumable fetch task.
type Key struct {
	Provider model.Provider
	Subject  string
}

// Progress maps fetch tasks to the next pagination offset to resume from.
// It lives for the process lifetime only: a restart resets every task to
// offset 0 and causes a full re-fetch, which store-level dedup makes safe,
// merely wasteful.
type Progress struct {
	mu      sync.Mutex
	offsets map[Key]int
}

func NewProgress() *Progress {
	return &Progress{offsets: make(map[Key]int)}
}

// Offset returns the recorded offset for a task, 0 for unseen tasks.
func (p *Progress) Offset(key Key) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.offsets[key]
}

func (p *Progress) SetOffset(key Key, offset int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.offsets[key] = offset
}
