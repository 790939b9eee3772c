// Package vcs checks out project source for an import run. git goes
// through go-git; hg and bzr delegate to their command-line clients.
package vcs

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/droidport/droidport/internal/repohost"
)

// CheckoutError indicates a clone or revision checkout failed.
type CheckoutError struct {
	VCS     repohost.VCSKind
	Address string
	Err     error
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("checkout of %s repo %q failed: %v", e.VCS, e.Address, e.Err)
}

func (e *CheckoutError) Unwrap() error {
	return e.Err
}

// CloneToTemp checks out loc into <tmpBase>/importer, replacing any
// leftover tree from a previous run, and returns the checkout directory.
// rev selects a revision, tag, or branch; empty means the default head.
func CloneToTemp(loc *repohost.ProjectLocation, rev, tmpBase string) (string, error) {
	if err := os.MkdirAll(tmpBase, 0o755); err != nil {
		return "", fmt.Errorf("creating temporary directory: %w", err)
	}
	dest := filepath.Join(tmpBase, "importer")
	if err := os.RemoveAll(dest); err != nil {
		return "", fmt.Errorf("clearing previous checkout: %w", err)
	}

	switch loc.VCS {
	case repohost.VCSGit:
		if err := cloneGit(loc.RepoAddress, rev, dest); err != nil {
			return "", &CheckoutError{VCS: loc.VCS, Address: loc.RepoAddress, Err: err}
		}
	case repohost.VCSHg:
		if err := runClient("hg", "clone", loc.RepoAddress, dest); err != nil {
			return "", &CheckoutError{VCS: loc.VCS, Address: loc.RepoAddress, Err: err}
		}
		if rev != "" {
			if err := runClientIn(dest, "hg", "update", "-C", rev); err != nil {
				return "", &CheckoutError{VCS: loc.VCS, Address: loc.RepoAddress, Err: err}
			}
		}
	case repohost.VCSBzr:
		args := []string{"branch", loc.RepoAddress, dest}
		if rev != "" {
			args = []string{"branch", "-r", rev, loc.RepoAddress, dest}
		}
		if err := runClient("bzr", args...); err != nil {
			return "", &CheckoutError{VCS: loc.VCS, Address: loc.RepoAddress, Err: err}
		}
	default:
		return "", &CheckoutError{VCS: loc.VCS, Address: loc.RepoAddress,
			Err: errors.New("unknown vcs kind")}
	}

	return dest, nil
}

func cloneGit(address, rev, dest string) error {
	repo, err := git.PlainClone(dest, false, &git.CloneOptions{URL: address})
	if err != nil {
		return err
	}
	if rev == "" {
		return nil
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return fmt.Errorf("resolving revision %q: %w", rev, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return err
	}
	return wt.Checkout(&git.CheckoutOptions{Hash: *hash})
}

func runClient(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %v: %v (%s)", name, args, err, out)
	}
	return nil
}

func runClientIn(dir, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %v: %v (%s)", name, args, err, out)
	}
	return nil
}

// WorkTreeInfo describes an existing local working copy.
type WorkTreeInfo struct {
	OriginURL  string
	HeadCommit string
}

// IsWorkTree reports whether dir is a git working copy.
func IsWorkTree(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// InspectWorkTree reads the origin remote URL and HEAD commit of a local
// git working copy. The origin URL may be empty when no such remote is
// configured.
func InspectWorkTree(dir string) (*WorkTreeInfo, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("opening git repo at %s: %w", dir, err)
	}

	info := &WorkTreeInfo{}
	if remote, err := repo.Remote("origin"); err == nil {
		urls := remote.Config().URLs
		if len(urls) > 0 {
			info.OriginURL = urls[0]
		}
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("reading HEAD of %s: %w", dir, err)
	}
	info.HeadCommit = head.Hash().String()

	return info, nil
}
