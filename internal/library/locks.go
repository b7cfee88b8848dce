package library

import (
	"fmt"
	"sort"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// keyedMutex hands out one mutex per key. Entries are never removed; the
// key space is bounded by the number of titles, categories and borrowers.
type keyedMutex struct {
	mu *xsync.MapOf[string, *sync.Mutex]
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{mu: xsync.NewMapOf[string, *sync.Mutex]()}
}

// Lock acquires the mutexes of all keys in sorted order and returns the
// function releasing them. Duplicate and empty keys are ignored.
func (k *keyedMutex) Lock(keys ...string) (unlock func()) {
	uniq := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		uniq = append(uniq, key)
	}
	sort.Strings(uniq)

	held := make([]*sync.Mutex, 0, len(uniq))
	for _, key := range uniq {
		m, _ := k.mu.LoadOrCompute(key, func() *sync.Mutex { return &sync.Mutex{} })
		m.Lock()
		held = append(held, m)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

func titleKey(title string) string {
	return "title:" + title
}

func categoryKey(id *int64) string {
	if id == nil {
		return ""
	}
	return fmt.Sprintf("category:%d", *id)
}

func borrowerKey(id string) string {
	return "borrower:" + id
}
