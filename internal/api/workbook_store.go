package api

import (
	"sync"
	"time"

	"github.com/leonardocandio/cargos/internal/model"
)

const workbookTTL = 2 * time.Hour

type parsedEntry struct {
	workbook  *model.ParsedWorkbook
	expiresAt time.Time
}

// workbookStore holds parsed workbooks between the parse and generate
// calls, keyed by file id. Entries expire so abandoned uploads do not
// accumulate.
type workbookStore struct {
	mu    sync.Mutex
	items map[string]parsedEntry
}

func newWorkbookStore() *workbookStore {
	return &workbookStore{
		items: make(map[string]parsedEntry),
	}
}

func (s *workbookStore) put(wb *model.ParsedWorkbook) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())
	s.items[wb.FileID] = parsedEntry{
		workbook:  wb,
		expiresAt: time.Now().Add(workbookTTL),
	}
}

func (s *workbookStore) get(id string) (*model.ParsedWorkbook, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())
	v, ok := s.items[id]
	if !ok {
		return nil, false
	}
	return v.workbook, true
}

func (s *workbookStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}
