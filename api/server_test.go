package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wricardo/ludo-server/game/room"
	"github.com/wricardo/ludo-server/game/service"
	"github.com/wricardo/ludo-server/transport/websocket"
)

// MockGameService implements service.GameService for testing
type MockGameService struct {
	CreateRoomFunc func(ctx context.Context, playerID, name string) (*service.Outcome, error)
	JoinRoomFunc   func(ctx context.Context, playerID, code, name string) (*service.Outcome, error)
	StartGameFunc  func(ctx context.Context, playerID, code string) (*service.Outcome, error)
	LeaveRoomFunc  func(ctx context.Context, playerID string) (*service.Outcome, error)
	RollDiceFunc   func(ctx context.Context, playerID, code string) (*service.Outcome, error)
	MovePieceFunc  func(ctx context.Context, playerID, code string, slot int) (*service.Outcome, error)
	GetRoomFunc    func(ctx context.Context, code string) (*room.State, error)
	ListRoomsFunc  func(ctx context.Context) ([]*service.RoomSummary, error)
}

func (m *MockGameService) CreateRoom(ctx context.Context, playerID, name string) (*service.Outcome, error) {
	if m.CreateRoomFunc != nil {
		return m.CreateRoomFunc(ctx, playerID, name)
	}
	return &service.Outcome{}, nil
}

func (m *MockGameService) JoinRoom(ctx context.Context, playerID, code, name string) (*service.Outcome, error) {
	if m.JoinRoomFunc != nil {
		return m.JoinRoomFunc(ctx, playerID, code, name)
	}
	return &service.Outcome{}, nil
}

func (m *MockGameService) StartGame(ctx context.Context, playerID, code string) (*service.Outcome, error) {
	if m.StartGameFunc != nil {
		return m.StartGameFunc(ctx, playerID, code)
	}
	return &service.Outcome{}, nil
}

func (m *MockGameService) LeaveRoom(ctx context.Context, playerID string) (*service.Outcome, error) {
	if m.LeaveRoomFunc != nil {
		return m.LeaveRoomFunc(ctx, playerID)
	}
	return &service.Outcome{}, nil
}

func (m *MockGameService) RollDice(ctx context.Context, playerID, code string) (*service.Outcome, error) {
	if m.RollDiceFunc != nil {
		return m.RollDiceFunc(ctx, playerID, code)
	}
	return &service.Outcome{}, nil
}

func (m *MockGameService) MovePiece(ctx context.Context, playerID, code string, slot int) (*service.Outcome, error) {
	if m.MovePieceFunc != nil {
		return m.MovePieceFunc(ctx, playerID, code, slot)
	}
	return &service.Outcome{}, nil
}

func (m *MockGameService) GetRoom(ctx context.Context, code string) (*room.State, error) {
	if m.GetRoomFunc != nil {
		return m.GetRoomFunc(ctx, code)
	}
	return &room.State{Code: code}, nil
}

func (m *MockGameService) ListRooms(ctx context.Context) ([]*service.RoomSummary, error) {
	if m.ListRoomsFunc != nil {
		return m.ListRoomsFunc(ctx)
	}
	return []*service.RoomSummary{}, nil
}

func newTestServer(svc service.GameService) *Server {
	hub := websocket.NewHub(svc, nil)
	go hub.Run()
	return NewServer(svc, hub, "")
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer(&MockGameService{})

	req := httptest.NewRequest("GET", "/api/health", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", body["status"])
	}
}

func TestHandleListRooms(t *testing.T) {
	mock := &MockGameService{
		ListRoomsFunc: func(ctx context.Context) ([]*service.RoomSummary, error) {
			return []*service.RoomSummary{
				{Code: "AAAAAA", PlayerCount: 2, GameStarted: true},
				{Code: "BBBBBB", PlayerCount: 1},
			}, nil
		},
	}
	server := newTestServer(mock)

	req := httptest.NewRequest("GET", "/api/rooms", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}

	var body struct {
		Rooms []*service.RoomSummary `json:"rooms"`
		Count int                    `json:"count"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Count != 2 || len(body.Rooms) != 2 {
		t.Errorf("Expected 2 rooms, got count=%d len=%d", body.Count, len(body.Rooms))
	}
	if body.Rooms[0].Code != "AAAAAA" {
		t.Errorf("Expected first room AAAAAA, got %s", body.Rooms[0].Code)
	}
}

func TestHandleGetRoom(t *testing.T) {
	mock := &MockGameService{
		GetRoomFunc: func(ctx context.Context, code string) (*room.State, error) {
			if code != "ABCDEF" {
				return nil, room.ErrRoomNotFound
			}
			return &room.State{Code: code, GameStarted: true}, nil
		},
	}
	server := newTestServer(mock)

	req := httptest.NewRequest("GET", "/api/rooms/ABCDEF", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}

	var state room.State
	if err := json.NewDecoder(rr.Body).Decode(&state); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if state.Code != "ABCDEF" || !state.GameStarted {
		t.Errorf("Unexpected room state: %+v", state)
	}
}

func TestHandleGetRoomNotFound(t *testing.T) {
	mock := &MockGameService{
		GetRoomFunc: func(ctx context.Context, code string) (*room.State, error) {
			return nil, room.ErrRoomNotFound
		},
	}
	server := newTestServer(mock)

	req := httptest.NewRequest("GET", "/api/rooms/NOSUCH", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["error"] == "" {
		t.Error("Expected an error message in the body")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"room not found", room.ErrRoomNotFound, http.StatusNotFound},
		{"not in room", room.ErrNotInRoom, http.StatusNotFound},
		{"not authorized", room.ErrNotAuthorized, http.StatusForbidden},
		{"room full", room.ErrRoomFull, http.StatusConflict},
		{"already started", room.ErrGameAlreadyStarted, http.StatusConflict},
		{"not your turn", room.ErrNotYourTurn, http.StatusConflict},
		{"illegal move", room.ErrIllegalMove, http.StatusConflict},
		{"unknown", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	server := newTestServer(&MockGameService{})

	req := httptest.NewRequest("POST", "/api/rooms", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rr.Code)
	}
}
