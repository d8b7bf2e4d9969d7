package source

type (
	// FileID uniquely identifies a compilation unit within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a compilation unit.
	FileFlags uint8
)

// NoFile is the file of spans that point at no unit.
const NoFile FileID = 1<<32 - 1

const (
	// FileVirtual indicates the unit was added from memory (tests, generated dumps).
	FileVirtual FileFlags = 1 << iota
	// FileNoText marks units whose dump carried no source text; positions
	// resolve against an empty line index.
	FileNoText
)

// File captures metadata and content for a single compilation unit.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
