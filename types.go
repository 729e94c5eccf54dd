package flatpack

// Entry describes one record of a container.
type Entry struct {
	// Name is the base name stored in the container.
	Name string

	// Size is the length of the entry's data in bytes.
	Size uint64

	// Offset is the position of the entry's data within the container.
	Offset int64
}

// Order controls the sequence in which Pack writes entries.
type Order uint8

const (
	// OrderSorted writes entries sorted by source path, giving identical
	// containers for identical inputs.
	OrderSorted Order = iota

	// OrderInsertion writes entries in the order they were first Put.
	OrderInsertion
)

// CollisionPolicy controls what happens when two entries share a base name.
type CollisionPolicy uint8

const (
	// CollisionOverwrite keeps every entry; on unpack the entry that appears
	// last in the container wins.
	CollisionOverwrite CollisionPolicy = iota

	// CollisionReject fails with ErrNameCollision.
	CollisionReject
)

// ProgressStage identifies the operation reporting progress.
type ProgressStage uint8

const (
	// StagePacking indicates entries are being written to a container.
	StagePacking ProgressStage = iota

	// StageUnpacking indicates entries are being extracted from a container.
	StageUnpacking
)

// String returns a lowercase name for the stage.
func (s ProgressStage) String() string {
	switch s {
	case StagePacking:
		return "packing"
	case StageUnpacking:
		return "unpacking"
	default:
		return "unknown"
	}
}

// ProgressEvent is reported after each entry is packed or unpacked.
type ProgressEvent struct {
	// Stage identifies the operation.
	Stage ProgressStage

	// Name is the base name of the entry just processed.
	Name string

	// BytesDone is the container offset reached so far.
	BytesDone uint64

	// EntriesDone is the number of entries processed.
	EntriesDone int

	// EntriesTotal is the number of entries to process.
	// Zero means the total is unknown, as it is while unpacking.
	EntriesTotal int
}

// ProgressFunc receives progress updates. It is called synchronously from
// the packing or unpacking goroutine.
type ProgressFunc func(ProgressEvent)
