// Package room implements game sessions and their lifecycle.
//
// A Room is one independent game: its players in join order, the four
// pieces of each seated color, and the turn state. Rooms are the single
// source of truth; clients are untrusted views, and every state change is
// validated and computed here before anything is broadcast.
//
// Concurrency:
//
// Each room carries its own mutex and serializes all of its mutations:
// rolls, moves, joins, and departures never interleave partial updates on
// the same room. The Registry guards only its lookup maps with a separate
// lock and never holds it across a room operation, so independent rooms
// run in parallel.
//
// Turn tracking:
//
// The current player is stored as a stable player ID rather than an index
// into the player slice. Departures therefore never corrupt whose turn it
// is; only a departing turn-holder forces a hand-off, which goes to the
// player who followed them in join order.
//
// Room codes:
//
// The Registry issues short uppercase codes from cryptographic randomness
// and remembers every code it has ever handed out, so a code is never
// reused within a process lifetime even after its room is destroyed.
package room
