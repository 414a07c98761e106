package lockfile

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/cbergoon/merkletree"

	"github.com/hlop3z/schemagen/internal/alerr"
)

// entryContent implements merkletree.Content for one lock entry.
type entryContent struct {
	path     string
	checksum string
}

func (c entryContent) CalculateHash() ([]byte, error) {
	h := sha256.Sum256([]byte(c.path + ":" + c.checksum))
	return h[:], nil
}

func (c entryContent) Equals(other merkletree.Content) (bool, error) {
	o, ok := other.(entryContent)
	if !ok {
		return false, nil
	}
	return c.path == o.path && c.checksum == o.checksum, nil
}

// merkleRoot computes the root over entries, which must already be sorted.
// Path and checksum both feed each leaf, so a rename changes the root.
func merkleRoot(entries []Entry) (string, error) {
	if len(entries) == 0 {
		return emptyRoot(), nil
	}

	contents := make([]merkletree.Content, 0, len(entries))
	for _, e := range entries {
		contents = append(contents, entryContent{path: e.Path, checksum: e.Checksum})
	}

	tree, err := merkletree.NewTree(contents)
	if err != nil {
		return "", alerr.Wrap(alerr.EInternalError, err, "failed to build merkle tree")
	}
	return hex.EncodeToString(tree.MerkleRoot()), nil
}

// emptyRoot returns a consistent root for a run that produced no files.
func emptyRoot() string {
	return Checksum([]byte("empty_lock"))
}
