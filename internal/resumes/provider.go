// Package resumes stores uploaded resume blobs under a resumes/ namespace
// on the local file system. Blobs are opaque: they are renamed to a
// generated unique name at write time and never inspected.
package resumes

import "io"

// Provider is the interface for resume blob operations.
type Provider interface {
	// Save writes the blob under name and returns the number of bytes written.
	Save(name string, r io.Reader) (int64, error)
	// Abs resolves name to an absolute path for serving.
	Abs(name string) (string, error)
	// Remove deletes the blob stored under name.
	Remove(name string) error
}
