// Package model provides the persisted record types for rotorgraph machines.
//
// This package contains type definitions and alphabet helpers only. All other
// internal packages import model; model imports nothing internal.
//
// Key design constraints:
//   - Records reference each other by string id, never by pointer
//   - CreatedSeq is a logical clock value, never a wall-clock timestamp
//   - All JSON tags use snake_case
package model
