// Package board defines the fixed geometry of the race track: the 52-cell
// shared loop, each color's entry cell and home-stretch boundary, and the
// safe cells where pieces cannot be captured. Everything here is constant;
// mutable game state lives in the engine and room packages.
package board
