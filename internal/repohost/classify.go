package repohost

import (
	"strings"

	"github.com/droidport/droidport/internal/fetch"
)

// Classifier maps project URLs to ProjectLocations. All rules except
// Bitbucket are pure URL transformations; Bitbucket needs one page fetch
// through the scraper.
type Classifier struct {
	scraper *PageScraper
}

// NewClassifier creates a Classifier whose scraper fetches through f.
func NewClassifier(f fetch.Fetcher) *Classifier {
	return &Classifier{scraper: NewPageScraper(f)}
}

// rule is one entry of the ordered classification chain. First match wins.
type rule struct {
	match func(url string) bool
	build func(c *Classifier, url string) (*ProjectLocation, error)
}

var rules = []rule{
	{
		match: func(url string) bool { return strings.HasPrefix(url, "git://") },
		build: func(_ *Classifier, url string) (*ProjectLocation, error) {
			// Not web-browsable, so no source or homepage links
			return &ProjectLocation{
				Hosting:     HostingGit,
				VCS:         VCSGit,
				RepoAddress: url,
			}, nil
		},
	},
	{
		match: func(url string) bool { return strings.HasPrefix(url, "https://github.com") },
		build: func(_ *Classifier, url string) (*ProjectLocation, error) {
			return &ProjectLocation{
				Hosting:      HostingGitHub,
				VCS:          VCSGit,
				RepoAddress:  url,
				SourceCode:   url,
				IssueTracker: url + "/issues",
			}, nil
		},
	},
	{
		match: func(url string) bool { return strings.HasPrefix(url, "https://gitlab.com/") },
		build: func(_ *Classifier, url string) (*ProjectLocation, error) {
			// git can be fussy with gitlab URLs unless they end in .git
			display := strings.TrimSuffix(url, ".git")
			return &ProjectLocation{
				Hosting:      HostingGitLab,
				VCS:          VCSGit,
				RepoAddress:  display + ".git",
				SourceCode:   display + "/tree/HEAD",
				IssueTracker: display + "/issues",
				WebSite:      display,
			}, nil
		},
	},
	{
		match: func(url string) bool { return strings.HasPrefix(url, "https://notabug.org/") },
		build: func(_ *Classifier, url string) (*ProjectLocation, error) {
			display := strings.TrimSuffix(url, ".git")
			return &ProjectLocation{
				Hosting:      HostingNotABug,
				VCS:          VCSGit,
				RepoAddress:  display + ".git",
				SourceCode:   display,
				IssueTracker: display + "/issues",
			}, nil
		},
	},
	{
		match: func(url string) bool { return strings.HasPrefix(url, "https://bitbucket.org/") },
		build: func(c *Classifier, url string) (*ProjectLocation, error) {
			display := strings.TrimSuffix(url, "/")
			// The URL shape does not tell us the vcs kind or clone
			// address; the project page does
			res, err := c.scraper.Scrape(display)
			if err != nil {
				return nil, &UnsupportedLocationError{
					URL:    display,
					Reason: "unable to determine vcs type: " + err.Error(),
					Err:    err,
				}
			}
			return &ProjectLocation{
				Hosting:      HostingBitbucket,
				VCS:          res.VCS,
				RepoAddress:  res.RepoAddress,
				SourceCode:   display + "/src",
				IssueTracker: display + "/issues",
			}, nil
		},
	},
	{
		match: func(url string) bool {
			return strings.HasPrefix(url, "https://") && strings.HasSuffix(url, ".git")
		},
		build: func(_ *Classifier, url string) (*ProjectLocation, error) {
			return &ProjectLocation{
				Hosting:     HostingRawGit,
				VCS:         VCSGit,
				RepoAddress: url,
			}, nil
		},
	},
}

// Classify resolves url against the rule chain and validates the result.
// It returns UnsupportedLocationError when no rule matches and
// InvalidRepoAddressError when the derived address fails validation.
func (c *Classifier) Classify(url string) (*ProjectLocation, error) {
	for _, r := range rules {
		if !r.match(url) {
			continue
		}
		loc, err := r.build(c, url)
		if err != nil {
			return nil, err
		}
		// Derive, then validate: scraped addresses are untrusted
		if err := loc.Validate(); err != nil {
			return nil, err
		}
		return loc, nil
	}
	return nil, &UnsupportedLocationError{URL: url, Reason: "unrecognized URL format"}
}
