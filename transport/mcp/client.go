package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/ludo-server/game/room"
	"github.com/wricardo/ludo-server/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Four-Color Race Game Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Four-Color Race Game Server - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Up to four players race their four pieces once around a 52-cell track and
through a private home stretch. The first player to bring all four pieces
home wins.

AVAILABLE TOOLS:
- list_rooms: List all active rooms with player counts
- get_room: Full snapshot of one room (players, pieces, whose turn)
- game_rules: Get the complete rules of the game

Rooms are created, joined, and played over the server's WebSocket
interface; these tools are a read-only window for spectating and
debugging.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rooms",
		Description: "List all active game rooms",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListRooms)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_room",
		Description: "Get the full state of a specific room",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"code": map[string]interface{}{
					"type":        "string",
					"description": "Six-character room code",
				},
			},
			Required: []string{"code"},
		},
	}, c.handleGetRoom)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_rules",
		Description: "Get the complete rules of the game",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameRules)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiCall makes an HTTP request to the REST API
func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleListRooms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int                    `json:"count"`
		Rooms []*service.RoomSummary `json:"rooms"`
	}

	err := c.apiCall("GET", "/api/rooms", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if response.Count == 0 {
		return mcp.NewToolResultText("No active rooms."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Active Rooms (%d):\n\n", response.Count)
	for _, r := range response.Rooms {
		phase := "waiting"
		if r.GameOver {
			phase = "finished"
		} else if r.GameStarted {
			phase = "in progress"
		}
		fmt.Fprintf(&sb, "- %s (%d players, %s)\n", r.Code, r.PlayerCount, phase)
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGetRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	code, _ := args["code"].(string)

	var state room.State
	err := c.apiCall("GET", fmt.Sprintf("/api/rooms/%s", code), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRoomState(&state)), nil
}

func (c *Client) handleGameRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(gameRules), nil
}

// formatRoomState renders a room snapshot as readable text.
func formatRoomState(state *room.State) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Room %s\n", state.Code)
	switch {
	case state.GameOver:
		fmt.Fprintf(&sb, "Phase: finished, winner %s\n", state.Winner)
	case state.GameStarted:
		turn := state.CurrentPlayerID
		for _, p := range state.Players {
			if p.ID == state.CurrentPlayerID {
				turn = p.Name
				break
			}
		}
		fmt.Fprintf(&sb, "Phase: in progress, current turn %s\n", turn)
	default:
		sb.WriteString("Phase: waiting for players\n")
	}

	fmt.Fprintf(&sb, "\nPlayers (%d):\n", len(state.Players))
	for _, p := range state.Players {
		host := ""
		if p.IsHost {
			host = " (host)"
		}
		fmt.Fprintf(&sb, "- %s [%s]%s\n", p.Name, p.Color, host)
	}

	if state.GameStarted {
		sb.WriteString("\nPieces:\n")
		for color, pieces := range state.Pieces {
			fmt.Fprintf(&sb, "- %s:", color)
			for slot, piece := range pieces {
				switch {
				case piece.Finished():
					fmt.Fprintf(&sb, " #%d home", slot)
				case piece.InHomeStretch:
					fmt.Fprintf(&sb, " #%d stretch[%d]", slot, piece.Position)
				case piece.AtStart():
					fmt.Fprintf(&sb, " #%d start", slot)
				default:
					fmt.Fprintf(&sb, " #%d cell %d", slot, piece.Position)
				}
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

const gameRules = `FOUR-COLOR RACE - RULES

SETUP
- 2 to 4 players, each assigned a color: red, green, yellow, or blue.
- Each player has 4 pieces, all starting off the board.
- The shared track has 52 cells. Each color enters at its own cell and
  runs the full loop before turning into a private 6-cell home stretch.

TURNS
- Players move in join order. On your turn, roll the die, then move one
  piece if any legal move exists.
- A piece leaves the start only on a roll of 6, landing on your entry cell.
- Rolling a 6 or capturing an opponent grants another roll.
- If no piece can use the roll, the turn passes (a wasted 6 still rolls again).

MOVEMENT
- Pieces move clockwise by the die count.
- After completing the loop, a piece turns into its home stretch. Exact
  count is required to reach the final cell; overshooting rolls are wasted.

CAPTURES
- Landing on a cell occupied by an opponent sends that piece back to start.
- Star cells are safe: pieces there cannot be captured.
- Pieces in a home stretch can never be captured.

WINNING
- The first player to bring all 4 pieces to the end of their home stretch
  wins. The game ends immediately.`
