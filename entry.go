package treefs

// Kind identifies what a tree entry creates on disk.
type Kind int

const (
	// KindDirectory creates a directory.
	KindDirectory Kind = iota
	// KindEmptyFile creates a zero-length file.
	KindEmptyFile
	// KindTextFile creates a file holding text content.
	KindTextFile
	// KindBinaryFile creates a file holding raw bytes.
	KindBinaryFile
	// KindCopiedFile creates a file by copying an existing source file.
	KindCopiedFile
)

// String returns a string representation of the Kind. The values match the
// type discriminators used by the YAML document shape.
func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindEmptyFile:
		return "empty_file"
	case KindTextFile:
		return "text_file"
	case KindBinaryFile:
		return "binary_file"
	case KindCopiedFile:
		return "copied_file"
	default:
		return "unknown"
	}
}

// Settings holds optional per-entry attributes. It applies to file entries
// only; directories ignore it.
type Settings struct {
	// Readonly marks the file read-only after its content is written.
	Readonly bool
}

// Entry describes one filesystem object to create relative to the tree
// root.
type Entry struct {
	// Path of the entry, relative to the root folder. It must not escape
	// the root after lexical normalization.
	Path string

	// Kind of object to create.
	Kind Kind

	// Content is the file content for text and binary entries.
	Content []byte

	// Source is the absolute path copied from for KindCopiedFile entries.
	Source string

	// Settings are optional per-entry attributes.
	Settings *Settings
}
