// Package repohost turns an arbitrary project URL into a normalized
// (hosting provider, version-control system, repository address) triple
// plus the derived project links a metadata record wants. Classification
// is an ordered rule chain; hosts that expose no structured signal in
// the URL itself (Bitbucket) fall back to scraping the project page.
package repohost

import (
	"strings"
	"unicode"
)

// Hosting identifies the hosting provider a project URL was matched to.
type Hosting string

const (
	HostingGit       Hosting = "git"     // bare git:// URL
	HostingGitHub    Hosting = "github"
	HostingGitLab    Hosting = "gitlab"
	HostingNotABug   Hosting = "notabug"
	HostingBitbucket Hosting = "bitbucket"
	HostingRawGit    Hosting = "rawgit" // any other https:// URL ending in .git
)

// VCSKind identifies the version-control system serving a repository.
type VCSKind string

const (
	VCSGit VCSKind = "git"
	VCSHg  VCSKind = "hg"
	VCSBzr VCSKind = "bzr"
)

// ProjectLocation is the normalized result of classifying a project URL.
// It is created once per import run and not mutated afterwards.
type ProjectLocation struct {
	Hosting      Hosting
	VCS          VCSKind
	RepoAddress  string
	SourceCode   string
	IssueTracker string
	WebSite      string
}

// Validate checks the repository-address invariant. Scraped addresses are
// untrusted and must be checked before being handed to a VCS client; in
// particular a git@ or ssh address could trigger unintended authenticated
// operations. bzr addresses are exempt from the scheme check.
func (l *ProjectLocation) Validate() error {
	if l.RepoAddress == "" {
		return &InvalidRepoAddressError{Address: l.RepoAddress}
	}
	if strings.ContainsFunc(l.RepoAddress, unicode.IsSpace) {
		return &InvalidRepoAddressError{Address: l.RepoAddress}
	}
	if l.VCS == VCSBzr {
		return nil
	}
	if !strings.HasPrefix(l.RepoAddress, "http://") &&
		!strings.HasPrefix(l.RepoAddress, "https://") &&
		!strings.HasPrefix(l.RepoAddress, "git://") {
		return &InvalidRepoAddressError{Address: l.RepoAddress}
	}
	return nil
}
