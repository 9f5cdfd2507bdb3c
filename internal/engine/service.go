package engine

import (
	"database/sql"
	"sync"
	"time"

	"github.com/Ariel-quanyu/spacegreen/internal/storage"
)

// Service bundles the storage substrate and domain operations. It is an
// explicit store object: callers construct one per database handle and pass
// it around, so tests can run isolated instances side by side.
type Service struct {
	db           *sql.DB
	kv           *storage.KV
	profiles     *storage.ProfileRepo
	achievements *storage.AchievementRepo
	community    *storage.CommunityRepo

	now func() time.Time

	mu        sync.Mutex
	listeners map[int]func()
	nextSub   int
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:           db,
		kv:           storage.NewKV(db),
		profiles:     storage.NewProfileRepo(db),
		achievements: storage.NewAchievementRepo(db),
		community:    storage.NewCommunityRepo(db),
		now:          func() time.Time { return time.Now().UTC() },
		listeners:    map[int]func(){},
	}
}

func (s *Service) KV() *storage.KV                         { return s.kv }
func (s *Service) ProfileRepo() *storage.ProfileRepo       { return s.profiles }
func (s *Service) AchievementRepo() *storage.AchievementRepo { return s.achievements }
func (s *Service) CommunityRepo() *storage.CommunityRepo   { return s.community }

// Subscribe registers a listener invoked after every mutating operation.
// The returned function removes the subscription.
func (s *Service) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Service) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
