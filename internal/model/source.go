// Package model defines the data structures shared by the analysis, rewriting
// and execution layers.
package model

// Path represents a file system path.
type Path string

// File represents a source code file.
type File struct {
	Path Path
	Hash string
}

// Source represents a Go source file selected for analysis.
type Source struct {
	Origin  *File
	Package *string
}
