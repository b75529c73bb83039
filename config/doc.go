// Package config provides runtime configuration for the game server.
//
// Settings are layered: built-in defaults, then an optional JSON file,
// then LUDO_* environment variables, with later layers winning. Secrets
// such as the ngrok auth token stay in the environment and are read by
// the component that needs them, never stored in Settings.
//
// Environment variables:
//   - LUDO_HOST, LUDO_PORT - bind address
//   - LUDO_STATIC_DIR - directory served at /
//   - LUDO_ALLOWED_ORIGINS - comma-separated WebSocket origin allowlist
//   - LUDO_MAX_ROOMS - cap on concurrent rooms
//   - LUDO_ROOM_CODE_LENGTH - length of generated room codes
//   - LUDO_NGROK, LUDO_DEBUG - boolean toggles ("1" or "true")
package config
