// Package models defines the core domain models for seatsync.
//
// # Models
//
//   - Guest: a person seated at a table; either a primary guest or a
//     plus-one attached to a primary guest through ParentID
//   - Table: a seating table with an ordered guest list
//   - Snapshot: every table and guest at an instant; the unit of persistence
//   - SearchResult: a denormalized guest match returned by name search
//
// # Design Principles
//
// 1. **Value semantics**: Snapshots are passed by value and never mutated in
// place; transitions build new guest slices
// 2. **Global identity**: Guest IDs are unique across the whole snapshot, not
// just within a table
// 3. **Flat grouping**: Plus-ones reference their parent by ID string; there
// is no tree and no transitive chain
// 4. **Wire-compatible**: JSON tags match the persisted document shape
package models
