package commitmsg

import (
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Test helpers - exported for testing only

// ResolveRefOrSHAForTesting exposes resolveRefOrSHA for testing.
func ResolveRefOrSHAForTesting(repo *git.Repository, refOrSHA string) (*object.Commit, error) {
	return resolveRefOrSHA(repo, refOrSHA)
}

// ReadMessageFileForTesting exposes readMessageFile for testing.
func ReadMessageFileForTesting(path string) (string, error) {
	return readMessageFile(path)
}
