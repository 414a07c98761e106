// Package lockfile provides read/write/compare for schemagen.lock files.
// The lock file records a SHA-256 checksum per generated artifact and a
// merkle root over all of them, so stale or hand-edited outputs can be found
// without regenerating onto disk.
package lockfile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hlop3z/schemagen/internal/alerr"
)

// Entry represents a single artifact entry in the lock file.
type Entry struct {
	Path     string // Slash-separated, relative to the output directory
	Checksum string
}

// LockFile represents the parsed contents of a schemagen.lock file.
type LockFile struct {
	Root    string  // Merkle root over all entries
	Entries []Entry // Per-artifact checksums, sorted by path
}

// DefaultName returns the lock file name, placed in the output directory.
func DefaultName() string {
	return "schemagen.lock"
}

// Checksum returns the hex SHA-256 of data.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Compute builds a lock file for artifacts keyed by relative path.
func Compute(files map[string][]byte) (*LockFile, error) {
	entries := make([]Entry, 0, len(files))
	for path, data := range files {
		entries = append(entries, Entry{
			Path:     filepath.ToSlash(path),
			Checksum: Checksum(data),
		})
	}

	// Sort by path for deterministic output
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Path, b.Path)
	})

	root, err := merkleRoot(entries)
	if err != nil {
		return nil, err
	}
	return &LockFile{Root: root, Entries: entries}, nil
}

// Marshal renders the lock file: the root on the first line, then one
// "checksum path" line per entry.
func (lf *LockFile) Marshal() []byte {
	var sb strings.Builder
	sb.WriteString(lf.Root + "\n")
	for _, e := range lf.Entries {
		sb.WriteString(fmt.Sprintf("%s %s\n", e.Checksum, e.Path))
	}
	return []byte(sb.String())
}

// Parse parses lock file contents.
func Parse(data []byte) (*LockFile, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, alerr.New(alerr.ErrStaleOutput, "lock file is empty")
	}
	lines := strings.Split(text, "\n")

	lf := &LockFile{
		Root: strings.TrimSpace(lines[0]),
	}

	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			continue
		}
		lf.Entries = append(lf.Entries, Entry{
			Path:     strings.TrimSpace(parts[1]),
			Checksum: strings.TrimSpace(parts[0]),
		})
	}

	return lf, nil
}

// Read reads and parses a lock file from the given path.
// Returns nil if the file does not exist.
func Read(path string) (*LockFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, alerr.Wrap(alerr.ErrReadInput, err, "failed to read lock file").
			WithFile(path, 0)
	}
	return Parse(data)
}

// Write writes lf to path, creating the parent directory.
func Write(path string, lf *LockFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return alerr.Wrap(alerr.ErrWriteOutput, err, "failed to create lock file directory").
			WithFile(path, 0)
	}
	if err := os.WriteFile(path, lf.Marshal(), 0644); err != nil {
		return alerr.Wrap(alerr.ErrWriteOutput, err, "failed to write lock file").
			WithFile(path, 0)
	}
	return nil
}

// VerificationResult holds detailed results of a lock comparison.
type VerificationResult struct {
	Valid          bool     // Overall validity
	LockFileExists bool     // Whether a recorded lock was available
	RootMatch      bool     // Whether the merkle roots match
	NewFiles       []string // Expected but not recorded
	RemovedFiles   []string // Recorded but no longer expected
	ModifiedFiles  []string // Checksum mismatches
	VerifiedFiles  []string // Entries that matched
}

// Compare checks a recorded lock against the expected one.
// A nil recorded lock reports every expected entry as new.
func Compare(expected, recorded *LockFile) *VerificationResult {
	result := &VerificationResult{
		Valid:          true,
		LockFileExists: recorded != nil,
		RootMatch:      true,
	}
	if recorded == nil {
		recorded = &LockFile{}
		result.Valid = false
		result.RootMatch = false
	}

	if expected.Root != recorded.Root {
		result.RootMatch = false
		result.Valid = false
	}

	// Build lookup from recorded lock
	lockMap := make(map[string]string)
	for _, e := range recorded.Entries {
		lockMap[e.Path] = e.Checksum
	}

	expectedMap := make(map[string]bool)
	for _, e := range expected.Entries {
		expectedMap[e.Path] = true

		checksum, ok := lockMap[e.Path]
		switch {
		case !ok:
			result.NewFiles = append(result.NewFiles, e.Path)
			result.Valid = false
		case checksum != e.Checksum:
			result.ModifiedFiles = append(result.ModifiedFiles, e.Path)
			result.Valid = false
		default:
			result.VerifiedFiles = append(result.VerifiedFiles, e.Path)
		}
	}

	for _, e := range recorded.Entries {
		if !expectedMap[e.Path] {
			result.RemovedFiles = append(result.RemovedFiles, e.Path)
			result.Valid = false
		}
	}

	return result
}

// Stale returns every path that failed verification, sorted.
func (r *VerificationResult) Stale() []string {
	var out []string
	out = append(out, r.NewFiles...)
	out = append(out, r.ModifiedFiles...)
	out = append(out, r.RemovedFiles...)
	slices.Sort(out)
	return slices.Compact(out)
}
