// Package mcp provides a Model Context Protocol interface to the game server.
//
// The package is a thin proxy: every tool call is translated into a request
// against the server's REST API, so the MCP surface never touches game
// state directly and stays consistent with what HTTP clients see.
//
// MCP Tools:
//   - list_rooms: List all active rooms with player counts
//   - get_room: Full snapshot of one room (players, pieces, whose turn)
//   - game_rules: Complete rules of the game
//
// Gameplay itself happens over the WebSocket transport; the MCP tools are
// read-only and intended for AI agents spectating or debugging games.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	handler := server.NewStreamableHTTPServer(client.GetMCPServer())
//	router.PathPrefix("/mcp").Handler(handler)
package mcp
