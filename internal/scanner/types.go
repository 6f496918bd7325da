// Package scanner discovers indexable files under one or more root paths,
// respecting .gitignore rules and a fixed set of exclusions for directories
// and files that are never worth indexing.
package scanner

import "time"

// FileInfo describes one file discovered by Scan.
type FileInfo struct {
	Path    string // relative to the scan root that contains it
	AbsPath string
	Size    int64
	ModTime time.Time
}

// Options configures a scan.
type Options struct {
	// RespectGitignore enables .gitignore parsing, rooted at each scanned
	// directory and any nested directories the walk descends into.
	RespectGitignore bool

	// ExcludePatterns are additional gitignore-syntax patterns applied on
	// top of the built-in defaults.
	ExcludePatterns []string

	// FollowSymlinks enables following symbolic links. Default false.
	FollowSymlinks bool
}

// defaultExcludeDirs are directories never worth descending into.
var defaultExcludeDirs = []string{
	"node_modules", ".git", "vendor", "__pycache__", "dist", "build",
	".aws", ".gcp", ".azure", ".ssh",
}

// defaultExcludeFiles are generated or vendored files never worth indexing.
var defaultExcludeFiles = []string{
	"*.min.js", "*.min.css", "package-lock.json", "yarn.lock",
	"pnpm-lock.yaml", "go.sum",
}

// sensitiveFilePatterns are files that must never be indexed regardless of
// gitignore state, since they commonly hold secrets.
var sensitiveFilePatterns = []string{
	".env", ".env.*", "*.pem", "*.key", "*.p12", "*.pfx",
	"*credentials*", "*secrets*", "*password*",
	".netrc", ".npmrc", ".pypirc",
	"id_rsa", "id_dsa", "id_ecdsa", "id_ed25519",
}
