package room

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/wricardo/ludo-server/game/engine"
)

// DefaultCodeLength is the number of characters in a generated room code.
const DefaultCodeLength = 6

// Registry owns the collection of live rooms keyed by code, plus the
// participant-to-room index. It is safe for concurrent use: the registry
// lock guards only the maps and is never held across a room operation, so
// rooms stay fully independent of each other.
type Registry struct {
	mu       sync.RWMutex
	rooms    map[string]*Room
	byPlayer map[string]string // player ID -> room code; a player is in at most one room
	used     map[string]bool   // every code ever issued; codes are never reused
	roll     engine.Roller
	codeLen  int
	maxRooms int
}

// Option configures a Registry.
type Option func(*Registry)

// WithRoller overrides the die roller handed to new rooms.
func WithRoller(roll engine.Roller) Option {
	return func(g *Registry) { g.roll = roll }
}

// WithCodeLength sets the generated room code length.
func WithCodeLength(n int) Option {
	return func(g *Registry) { g.codeLen = n }
}

// WithMaxRooms caps the number of concurrently live rooms. Zero means no cap.
func WithMaxRooms(n int) Option {
	return func(g *Registry) { g.maxRooms = n }
}

// NewRegistry creates an empty room registry.
func NewRegistry(opts ...Option) *Registry {
	g := &Registry{
		rooms:    make(map[string]*Room),
		byPlayer: make(map[string]string),
		used:     make(map[string]bool),
		roll:     engine.NewRoller(),
		codeLen:  DefaultCodeLength,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Create allocates a fresh room with a unique code and seats the creator as
// host. The creator must not already be in a room.
func (g *Registry) Create(hostID, hostName string) (*Room, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, in := g.byPlayer[hostID]; in {
		return nil, ErrAlreadyInRoom
	}
	if g.maxRooms > 0 && len(g.rooms) >= g.maxRooms {
		return nil, ErrTooManyRooms
	}

	code := g.generateCode()
	r := newRoom(code, g.roll, hostID, hostName)
	g.rooms[code] = r
	g.byPlayer[hostID] = code
	return r, nil
}

// Get retrieves a room by code (case-insensitive).
func (g *Registry) Get(code string) (*Room, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	r, ok := g.rooms[strings.ToUpper(code)]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

// Join seats a player in the room with the given code. The byPlayer slot is
// reserved in the same critical section as the room lookup, so concurrent
// joins by one player resolve to a single seat.
func (g *Registry) Join(code, playerID, name string) (*Room, *Player, error) {
	g.mu.Lock()
	r, ok := g.rooms[strings.ToUpper(code)]
	if !ok {
		g.mu.Unlock()
		return nil, nil, ErrRoomNotFound
	}
	if _, in := g.byPlayer[playerID]; in {
		g.mu.Unlock()
		return nil, nil, ErrAlreadyInRoom
	}
	g.byPlayer[playerID] = r.Code()
	g.mu.Unlock()

	p, err := r.Join(playerID, name)
	if err != nil {
		g.mu.Lock()
		delete(g.byPlayer, playerID)
		g.mu.Unlock()
		return nil, nil, err
	}
	return r, p, nil
}

// RoomOf returns the room a player currently occupies.
func (g *Registry) RoomOf(playerID string) (*Room, error) {
	g.mu.RLock()
	code, ok := g.byPlayer[playerID]
	g.mu.RUnlock()
	if !ok {
		return nil, ErrNotInRoom
	}
	return g.Get(code)
}

// Leave removes a player from whichever room they occupy. The room is
// destroyed when its last player departs.
func (g *Registry) Leave(playerID string) (*Room, *LeaveResult, error) {
	r, err := g.RoomOf(playerID)
	if err != nil {
		return nil, nil, err
	}

	res, err := r.Leave(playerID)
	if err != nil {
		return nil, nil, err
	}

	g.mu.Lock()
	delete(g.byPlayer, playerID)
	if res.Empty {
		delete(g.rooms, r.Code())
	}
	g.mu.Unlock()
	return r, res, nil
}

// List returns all live rooms.
func (g *Registry) List() []*Room {
	g.mu.RLock()
	defer g.mu.RUnlock()

	result := make([]*Room, 0, len(g.rooms))
	for _, r := range g.rooms {
		result = append(result, r)
	}
	return result
}

// Count returns the number of live rooms.
func (g *Registry) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

// generateCode produces an uppercase hex code unused for the lifetime of
// the process. Callers hold the registry lock.
func (g *Registry) generateCode() string {
	for {
		buf := make([]byte, (g.codeLen+1)/2)
		rand.Read(buf)
		code := strings.ToUpper(hex.EncodeToString(buf))[:g.codeLen]
		if !g.used[code] {
			g.used[code] = true
			return code
		}
	}
}
