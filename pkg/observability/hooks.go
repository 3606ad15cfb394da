// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about graph mutations and snapshot-stack operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the engine dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGraphHooks(&myGraphHooks{})
//	    observability.SetSnapshotHooks(&mySnapshotHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Graph().OnAddNode(graphID, nodeID)
//	observability.Snapshot().OnPush(graphID, depth)
package observability

import "sync"

// =============================================================================
// Graph Hooks
// =============================================================================

// GraphHooks receives events from host-graph mutations. Entity ids are the
// engine's arena slot ids, scoped to the graph identified by graphID.
type GraphHooks interface {
	// Structural events
	OnAddNode(graphID string, nodeID int)
	OnAddEdge(graphID string, edgeID, source, target int)
	OnRemoveNode(graphID string, nodeID int)
	OnRemoveEdge(graphID string, edgeID int)

	// Attribute events (relabel, root/bidirectional flag flips)
	OnRelabelNode(graphID string, nodeID int)
	OnRelabelEdge(graphID string, edgeID int)
}

// =============================================================================
// Snapshot Hooks
// =============================================================================

// SnapshotHooks receives events from snapshot-stack operations. depth is the
// stack depth after the operation completed.
type SnapshotHooks interface {
	// OnPush records a snapshot capture.
	OnPush(graphID string, depth int)

	// OnRestore records a snapshot restore.
	OnRestore(graphID string, depth int)

	// OnDiscard records a snapshot dropped without being restored.
	OnDiscard(graphID string, depth int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGraphHooks is a no-op implementation of GraphHooks.
type NoopGraphHooks struct{}

func (NoopGraphHooks) OnAddNode(string, int)           {}
func (NoopGraphHooks) OnAddEdge(string, int, int, int) {}
func (NoopGraphHooks) OnRemoveNode(string, int)        {}
func (NoopGraphHooks) OnRemoveEdge(string, int)        {}
func (NoopGraphHooks) OnRelabelNode(string, int)       {}
func (NoopGraphHooks) OnRelabelEdge(string, int)       {}

// NoopSnapshotHooks is a no-op implementation of SnapshotHooks.
type NoopSnapshotHooks struct{}

func (NoopSnapshotHooks) OnPush(string, int)    {}
func (NoopSnapshotHooks) OnRestore(string, int) {}
func (NoopSnapshotHooks) OnDiscard(string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	graphHooks    GraphHooks    = NoopGraphHooks{}
	snapshotHooks SnapshotHooks = NoopSnapshotHooks{}
	hooksMu       sync.RWMutex
)

// SetGraphHooks registers custom graph hooks.
// This should be called once at application startup before any graph operations.
func SetGraphHooks(h GraphHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		graphHooks = h
	}
}

// SetSnapshotHooks registers custom snapshot hooks.
// This should be called once at application startup before any stack operations.
func SetSnapshotHooks(h SnapshotHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		snapshotHooks = h
	}
}

// Graph returns the registered graph hooks.
func Graph() GraphHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return graphHooks
}

// Snapshot returns the registered snapshot hooks.
func Snapshot() SnapshotHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return snapshotHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	graphHooks = NoopGraphHooks{}
	snapshotHooks = NoopSnapshotHooks{}
}
