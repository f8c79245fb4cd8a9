package commitmsg

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"go.uber.org/zap"
)

const (
	minRefFields     = 4
	commitRangeParts = 2

	gitZeroHash = "0000000000000000000000000000000000000000"
)

// candidate is a commit message selected for validation.
type candidate struct {
	hash    string
	ref     string
	message string
}

// commitSource selects the commits to validate from a repository.
type commitSource struct {
	config *Config
	repo   *git.Repository
	logger *zap.Logger
}

// openRepository opens the git repository rooted at path. Subdirectories of a
// repository are rejected.
func openRepository(path string) (*git.Repository, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("invalid repository path: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("invalid repository path: %s is not a directory", path)
	}

	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", path, err)
	}

	return repo, nil
}

// resolveRefOrSHA resolves a ref name or SHA to a commit object.
// Tries as ref first (branches, tags, HEAD), then as SHA.
func resolveRefOrSHA(repo *git.Repository, refOrSHA string) (*object.Commit, error) {
	// Try as ref name first (handles branches, remotes, tags, HEAD, HEAD^, etc.)
	hash, err := repo.ResolveRevision(plumbing.Revision(refOrSHA))
	if err == nil {
		commit, commitErr := repo.CommitObject(*hash)
		if commitErr == nil {
			return commit, nil
		}
	}

	commit, err := repo.CommitObject(plumbing.NewHash(refOrSHA))
	if err == nil {
		return commit, nil
	}

	return nil, fmt.Errorf("failed to resolve '%s' as ref or SHA", refOrSHA)
}

// fromArgs selects the commits between base and head refs/SHAs.
func (s *commitSource) fromArgs(baseRef string, headRef string) ([]candidate, error) {
	if baseRef == "" {
		baseRef = s.config.Settings.MainRef
	}

	baseCommit, err := resolveRefOrSHA(s.repo, baseRef)
	if err != nil {
		if baseRef == s.config.Settings.MainRef {
			return nil, fmt.Errorf("%w (hint: use --base-ref to specify a different base)", err)
		}

		return nil, err
	}

	headCommit, err := resolveRefOrSHA(s.repo, headRef)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("selecting commits from arguments",
		zap.String("base", baseCommit.Hash.String()),
		zap.String("head", headCommit.Hash.String()),
	)

	return s.inRange(baseCommit, headCommit, fmt.Sprintf("%s..%s", baseRef, headRef))
}

// fromPrePush reads git pre-push hook input and selects the pushed commits.
func (s *commitSource) fromPrePush(stdin io.Reader) ([]candidate, error) {
	// Each line: <local ref> <local oid> <remote ref> <remote oid>
	scanner := bufio.NewScanner(stdin)

	var candidates []candidate
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < minRefFields {
			continue
		}

		localRef := fields[0]
		localOID := fields[1]
		remoteOID := fields[3]

		// Handle delete
		if localOID == gitZeroHash {
			s.logger.Debug("skipping deleted ref", zap.String("ref", localRef))
			continue
		}

		if remoteOID == gitZeroHash {
			// New branch, examine all commits since main branch
			mainRef, err := resolveRefOrSHA(s.repo, s.config.Settings.MainRef)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve main ref: %w", err)
			}

			remoteOID = mainRef.Hash.String()
		}

		selected, err := s.fromRange(fmt.Sprintf("%s..%s", remoteOID, localOID), localRef)
		if err != nil {
			return nil, err
		}

		candidates = append(candidates, selected...)
	}

	err := scanner.Err()
	if err != nil {
		return nil, fmt.Errorf("error reading stdin: %w", err)
	}

	return candidates, nil
}

// fromEnv selects commits from the range named by the configured environment
// variable. It returns false if the variable is unset or empty.
func (s *commitSource) fromEnv() ([]candidate, bool, error) {
	name := s.config.Settings.RangeEnv

	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return nil, false, nil
	}

	s.logger.Debug("selecting commits from environment", zap.String("env", name), zap.String("range", value))

	candidates, err := s.fromRange(value, name)
	if err != nil {
		return nil, true, fmt.Errorf("%s: %w", name, err)
	}

	return candidates, true, nil
}

// fromHead selects the most recent commit.
func (s *commitSource) fromHead() ([]candidate, error) {
	commit, err := resolveRefOrSHA(s.repo, plumbing.HEAD.String())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	s.logger.Debug("selecting HEAD commit", zap.String("hash", commit.Hash.String()))

	return s.filter([]*object.Commit{commit}, plumbing.HEAD.String()), nil
}

// fromRange selects commits for "old..new" or a single revision.
func (s *commitSource) fromRange(commitRange string, ref string) ([]candidate, error) {
	if !strings.Contains(commitRange, "..") {
		commit, err := resolveRefOrSHA(s.repo, commitRange)
		if err != nil {
			return nil, err
		}

		return s.filter([]*object.Commit{commit}, ref), nil
	}

	parts := strings.Split(commitRange, "..")
	if len(parts) != commitRangeParts || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid commit range format: %s", commitRange)
	}

	oldCommit, err := resolveRefOrSHA(s.repo, parts[0])
	if err != nil {
		return nil, err
	}

	newCommit, err := resolveRefOrSHA(s.repo, parts[1])
	if err != nil {
		return nil, err
	}

	return s.inRange(oldCommit, newCommit, ref)
}

// inRange returns the commits reachable from newCommit but not from oldCommit.
func (s *commitSource) inRange(oldCommit *object.Commit, newCommit *object.Commit, ref string) ([]candidate, error) {
	oldCommits := make(map[plumbing.Hash]bool)
	oldIter := object.NewCommitIterCTime(oldCommit, nil, nil)
	err := oldIter.ForEach(func(c *object.Commit) error {
		oldCommits[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate old commits: %w", err)
	}

	var commits []*object.Commit
	newIter := object.NewCommitIterCTime(newCommit, nil, nil)
	err = newIter.ForEach(func(c *object.Commit) error {
		if !oldCommits[c.Hash] {
			commits = append(commits, c)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate new commits: %w", err)
	}

	return s.filter(commits, ref), nil
}

// filter drops merge commits and commits by skipped authors.
func (s *commitSource) filter(commits []*object.Commit, ref string) []candidate {
	candidates := make([]candidate, 0, len(commits))

	for _, commit := range commits {
		if s.config.Settings.SkipMergeCommits && len(commit.ParentHashes) > 1 {
			s.logger.Debug("skipping merge commit", zap.String("hash", commit.Hash.String()))
			continue
		}

		if shouldSkipAuthor(commit.Author.Name, commit.Author.Email, s.config.Settings) {
			s.logger.Debug("skipping commit by author",
				zap.String("hash", commit.Hash.String()),
				zap.String("author", commit.Author.Name),
			)

			continue
		}

		candidates = append(candidates, candidate{
			hash:    commit.Hash.String(),
			ref:     ref,
			message: commit.Message,
		})
	}

	return candidates
}
