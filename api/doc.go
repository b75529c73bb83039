// Package api provides the HTTP surface of the game server.
//
// Gameplay happens over the WebSocket at /ws; the REST endpoints are a
// read-only inspection surface for tooling and the lobby screen.
//
// Endpoints:
//   - GET /api/rooms - List open rooms with player counts
//   - GET /api/rooms/{code} - Full snapshot of one room
//   - GET /api/health - Health check
//   - GET /ws - WebSocket upgrade
//
// All endpoints return JSON. Errors carry an appropriate HTTP status code
// and a body of the form:
//
//	{
//	  "error": "error message"
//	}
package api
