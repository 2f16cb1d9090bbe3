// Package swen is the core of an experimental vector-UI compositor.
//
// # Overview
//
// Applications declare their UI as a retained tree of nodes, the
// compositor owns the global scene, and a tile-based renderer turns the
// scene into GPU work. The pipeline is linear with retained
// intermediate state:
//
//	source (.swen text)
//	  → lexer       → token stream
//	  → parser      → scene tree (Root { Desktop, System })
//	  → ir          → ordered instruction stream in world coordinates
//	  → tile        → immutable FrameSnapshot (tiles, segments, tables)
//	  → backend     → pixels
//
// # Packages
//
//   - Root package: primitive value types (Vector, Color, Matrix,
//     Bounds), node identities, and the shared logger.
//   - lexer: byte stream → tagged tokens with source spans.
//   - parser: tokens → validated scene tree with stable node ids.
//   - scene: retained node graph, coordinate accumulation, ownership.
//   - ir: scene tree → backend-agnostic render instructions.
//   - tile: bin → sort → merge → classify; builds FrameSnapshot.
//   - backend: capability-described consumers of FrameSnapshot.
//   - patch: validation surface for app-issued scene mutations.
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down.
// A node carries its position in parent space and a local position
// pre-accumulated from its ancestors; world position is the sum of
// the two.
//
// # Concurrency
//
// The pipeline is single-threaded and cooperative. A FrameSnapshot
// handed to a backend is immutable until the next scheduler reset;
// backends may dispatch GPU work in parallel internally.
package swen

// TileSize is the width and height of a tile in pixels.
// It is the unit of GPU work distribution and must be a power of two.
const TileSize = 16

// TileShift is log2(TileSize) for efficient division.
const TileShift = 4

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
