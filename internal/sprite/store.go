// Package sprite loads particle images in the background.
// Rendering never waits on it: an image that is still loading, or failed,
// simply reports not ready and the particle is drawn as a disc.
package sprite

import (
	"image"
	"log"
	"slices"
	"sync"
)

// State is the load progress of one image reference.
type State int

const (
	Pending State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "pending"
	}
}

type entry struct {
	img   image.Image
	state State
}

// Store is a concurrency-safe set of decoded images indexed like the
// configuration's image list.
type Store struct {
	mu      sync.RWMutex
	gen     int
	refs    []string
	entries []entry
	maxSize int
	wg      sync.WaitGroup
}

// NewStore creates an empty store. Images larger than maxSize on either side
// are downscaled on load; maxSize <= 0 keeps them as decoded.
func NewStore(maxSize int) *Store {
	return &Store{maxSize: maxSize}
}

// Load replaces the image list and starts decoding every reference.
// Calling it again with the same list is a no-op.
func (s *Store) Load(refs []string) {
	s.mu.Lock()
	if slices.Equal(refs, s.refs) && s.entries != nil {
		s.mu.Unlock()
		return
	}
	s.gen++
	gen := s.gen
	s.refs = slices.Clone(refs)
	s.entries = make([]entry, len(refs))
	s.mu.Unlock()

	for i, ref := range refs {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			img, err := Decode(ref, s.maxSize)
			if err != nil {
				log.Printf("sprite: image %d: %v", i, err)
			}
			s.finish(gen, i, img, err)
		}()
	}
}

func (s *Store) finish(gen, i int, img image.Image, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer Load replaced the list while we were decoding
	if gen != s.gen {
		return
	}
	if err != nil {
		s.entries[i] = entry{state: Failed}
		return
	}
	s.entries[i] = entry{img: img, state: Ready}
}

// Wait blocks until every started decode has finished.
func (s *Store) Wait() {
	s.wg.Wait()
}

// Image returns image i if it has finished loading.
func (s *Store) Image(i int) (image.Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i < 0 || i >= len(s.entries) || s.entries[i].state != Ready {
		return nil, false
	}
	return s.entries[i].img, true
}

// State reports the load progress of image i. Out-of-range indexes are Failed.
func (s *Store) State(i int) State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i < 0 || i >= len(s.entries) {
		return Failed
	}
	return s.entries[i].state
}

// Ref returns the reference image i was loaded from, or "" when out of range.
func (s *Store) Ref(i int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i < 0 || i >= len(s.refs) {
		return ""
	}
	return s.refs[i]
}

// Len returns the number of references in the current list.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Generation increments on every list replacement so callers can drop
// anything derived from an older list.
func (s *Store) Generation() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}
