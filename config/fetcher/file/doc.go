// Package file provides a file-based DataFetcher for settings documents.
//
// The file is read once at construction time and cached, so every call to
// Fetch returns the same bytes. Files larger than DefaultMaxSize are refused
// unless WithMaxSize raises the limit.
//
// Usage:
//
//	fetcher, err := file.NewFetcher("docs/exhale.yaml")()
//	if err != nil {
//	    // not found, a directory, or too large
//	}
//	data, err := fetcher.Fetch()
//
// Use errors.Is(err, file.ErrPathIsDirectory) or errors.Is(err, file.ErrFileTooLarge)
// to tell the failures apart.
package file
