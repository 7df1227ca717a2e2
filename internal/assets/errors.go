package assets

import "errors"

// Lookup misses. AssetResolver falls back to the embedded loader on these
// and on nothing else.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrScriptNotFound   = errors.New("script not found")
)

// Failures that stop a lookup.
var (
	ErrInvalidAssetName = errors.New("invalid asset name")  // separators, dots or empty
	ErrInvalidBasePath  = errors.New("invalid assets path") // missing, unreadable or not a directory
	ErrAssetRead        = errors.New("failed to read asset")
	ErrPathTraversal    = errors.New("asset path escapes base directory")
)
