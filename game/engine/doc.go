// Package engine implements the rules of the race game: piece movement,
// capture resolution, win detection, and the turn-extension policy.
//
// The engine is pure state transition logic over pieces; it holds no room
// or player state and performs no I/O. Board layout constants live in the
// board package.
//
// Movement rules:
//   - A piece at home enters the track only on the maximum die face,
//     landing on its color's entry cell.
//   - On the main track a piece advances die cells, wrapping around the
//     track. If the move crosses the color's stretch boundary the piece
//     turns into its private home stretch instead; a crossing that would
//     land past the final stretch cell is illegal, not clamped.
//   - In the home stretch a piece may only move if it lands on or before
//     the final cell. A piece on the final cell is finished.
//
// CanMove and ApplyMove share the boundary-crossing computation so the
// legality check and the execution can never diverge. Callers must check
// CanMove before ApplyMove; applying an illegal move is a contract
// violation and is rejected without mutating the piece.
//
// Captures: landing on a non-safe main-track cell occupied by another
// color sends that piece back home. Safe cells never produce captures,
// and pieces in their own home stretch are out of reach by definition.
package engine
