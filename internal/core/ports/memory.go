package ports

// MemoryProbe takes snapshots of process memory usage.
//
//go:generate mockgen -source=memory.go -destination=mocks/mock_memory.go -package=mocks
type MemoryProbe interface {
	// Snapshot returns the current memory in use, in bytes.
	Snapshot() int64
}
