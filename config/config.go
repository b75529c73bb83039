package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Settings holds every runtime option of the server. Values come from
// three layers, each overriding the previous: built-in defaults, an
// optional JSON file, and environment variables.
type Settings struct {
	Host           string   `json:"host"`
	Port           int      `json:"port"`
	StaticDir      string   `json:"static_dir"`
	AllowedOrigins []string `json:"allowed_origins"`
	MaxRooms       int      `json:"max_rooms"`
	RoomCodeLength int      `json:"room_code_length"`
	NgrokEnabled   bool     `json:"ngrok_enabled"`
	Debug          bool     `json:"debug"`
}

// Defaults returns the built-in settings used when nothing else is given.
func Defaults() *Settings {
	return &Settings{
		Host:           "0.0.0.0",
		Port:           8080,
		StaticDir:      "./static",
		MaxRooms:       1000,
		RoomCodeLength: 6,
	}
}

// Load builds the effective settings. The file path may be empty, in which
// case only defaults and environment variables apply.
func Load(path string) (*Settings, error) {
	s := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := json.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	s.applyEnv()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// applyEnv overrides settings from LUDO_* environment variables.
func (s *Settings) applyEnv() {
	if v := os.Getenv("LUDO_HOST"); v != "" {
		s.Host = v
	}
	if v := os.Getenv("LUDO_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			s.Port = port
		}
	}
	if v := os.Getenv("LUDO_STATIC_DIR"); v != "" {
		s.StaticDir = v
	}
	if v := os.Getenv("LUDO_ALLOWED_ORIGINS"); v != "" {
		s.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("LUDO_MAX_ROOMS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.MaxRooms = n
		}
	}
	if v := os.Getenv("LUDO_ROOM_CODE_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.RoomCodeLength = n
		}
	}
	if v := os.Getenv("LUDO_NGROK"); v != "" {
		s.NgrokEnabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("LUDO_DEBUG"); v != "" {
		s.Debug = v == "1" || strings.EqualFold(v, "true")
	}
}

// Validate checks the settings for values the server cannot run with.
func (s *Settings) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, s.Port)
	}
	if s.MaxRooms < 1 {
		return fmt.Errorf("%w: max_rooms must be positive, got %d", ErrInvalidConfig, s.MaxRooms)
	}
	if s.RoomCodeLength < 4 || s.RoomCodeLength > 12 {
		return fmt.Errorf("%w: room_code_length %d out of range [4,12]", ErrInvalidConfig, s.RoomCodeLength)
	}
	return nil
}

// Addr returns the host:port the HTTP server should bind to.
func (s *Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
