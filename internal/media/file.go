package media

import (
	"path"
	"strings"
	"time"
)

// FileKind is the variant of a File.
type FileKind int

const (
	FileVideo FileKind = iota + 1
	FileImage
	FileSubtitle
)

func (k FileKind) String() string {
	switch k {
	case FileVideo:
		return "video"
	case FileImage:
		return "image"
	case FileSubtitle:
		return "subtitle"
	default:
		return "unknown"
	}
}

// File is a catalog link owned by exactly one item.
type File struct {
	Kind        FileKind
	Description string

	// StoragePath is where the file lives, PublicationPath is the same file
	// as seen by the media player. Both use forward slashes.
	StoragePath     string
	PublicationPath string

	// Filename is the base name without extension. An empty Filename means the
	// file is described but not published.
	Filename  string
	Extension string

	Server  string // resolved server id, empty when no server claims the path
	Index   int    // position among the owner's files of the same kind
	Special bool   // video files only
}

// NewFile splits a storage path into filename and extension.
func NewFile(kind FileKind, description, storagePath string) *File {
	storagePath = strings.ReplaceAll(storagePath, `\`, "/")
	ext := path.Ext(storagePath)
	return &File{
		Kind:        kind,
		Description: description,
		StoragePath: storagePath,
		Filename:    strings.TrimSuffix(path.Base(storagePath), ext),
		Extension:   ext,
	}
}

// Name returns filename plus extension, or "" when the file is not published.
func (f *File) Name() string {
	if f.Filename == "" {
		return ""
	}
	return f.Filename + f.Extension
}

// Published reports whether the file is staged.
func (f *File) Published() bool { return f.Filename != "" }

// OnServer reports whether the file resolved to server id.
func (f *File) OnServer(id string) bool { return f.Server == id }

// Clone returns a copy; File holds no references.
func (f *File) Clone() *File {
	c := *f
	return &c
}

// SubtitleStream is one subtitle track published from File.
// Offset is the base offset applied to every entry.
type SubtitleStream struct {
	Language string
	Offset   time.Duration
	File     *File
}
