package service

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// GameManager is the registry of live sessions.
type GameManager struct {
	sessions  map[string]*Session
	clockTime time.Duration
	maxGames  int
	mu        sync.RWMutex
}

// NewGameManager creates a registry. A zero clockTime disables clocks and a
// zero maxGames removes the session limit.
func NewGameManager(clockTime time.Duration, maxGames int) *GameManager {
	return &GameManager{
		sessions:  make(map[string]*Session),
		clockTime: clockTime,
		maxGames:  maxGames,
	}
}

func (gm *GameManager) CreateGame() (*Session, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if gm.maxGames > 0 && len(gm.sessions) >= gm.maxGames {
		return nil, ErrTooManyGames
	}
	id := uuid.New().String()
	s := newSession(id, gm.clockTime)
	gm.sessions[id] = s
	log.Printf("created game %s", id)
	return s, nil
}

func (gm *GameManager) GetGame(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	s, exists := gm.sessions[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return s, nil
}

func (gm *GameManager) RemoveGame(gameID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if s, exists := gm.sessions[gameID]; exists {
		s.mu.Lock()
		s.stopClocks()
		s.mu.Unlock()
		delete(gm.sessions, gameID)
		log.Printf("removed game %s", gameID)
	}
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.sessions)
}

// Shutdown stops every clock so no flag callback fires after the server is
// gone.
func (gm *GameManager) Shutdown() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for _, s := range gm.sessions {
		s.mu.Lock()
		s.stopClocks()
		s.mu.Unlock()
	}
}
