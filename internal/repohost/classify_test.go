package repohost

import (
	"errors"
	"testing"

	"github.com/droidport/droidport/internal/fetch"
)

func newTestClassifier() (*Classifier, *fetch.MockFetcher) {
	mock := fetch.NewMockFetcher()
	return NewClassifier(mock), mock
}

func TestClassifyURLShapes(t *testing.T) {
	c, _ := newTestClassifier()

	tests := []struct {
		name string
		url  string
		want ProjectLocation
	}{
		{
			name: "git scheme verbatim",
			url:  "git://example.com/foo/bar",
			want: ProjectLocation{
				Hosting:     HostingGit,
				VCS:         VCSGit,
				RepoAddress: "git://example.com/foo/bar",
			},
		},
		{
			name: "github",
			url:  "https://github.com/x/y",
			want: ProjectLocation{
				Hosting:      HostingGitHub,
				VCS:          VCSGit,
				RepoAddress:  "https://github.com/x/y",
				SourceCode:   "https://github.com/x/y",
				IssueTracker: "https://github.com/x/y/issues",
			},
		},
		{
			name: "gitlab with .git suffix",
			url:  "https://gitlab.com/x/y.git",
			want: ProjectLocation{
				Hosting:      HostingGitLab,
				VCS:          VCSGit,
				RepoAddress:  "https://gitlab.com/x/y.git",
				SourceCode:   "https://gitlab.com/x/y/tree/HEAD",
				IssueTracker: "https://gitlab.com/x/y/issues",
				WebSite:      "https://gitlab.com/x/y",
			},
		},
		{
			name: "gitlab without .git suffix",
			url:  "https://gitlab.com/x/y",
			want: ProjectLocation{
				Hosting:      HostingGitLab,
				VCS:          VCSGit,
				RepoAddress:  "https://gitlab.com/x/y.git",
				SourceCode:   "https://gitlab.com/x/y/tree/HEAD",
				IssueTracker: "https://gitlab.com/x/y/issues",
				WebSite:      "https://gitlab.com/x/y",
			},
		},
		{
			name: "notabug",
			url:  "https://notabug.org/x/y",
			want: ProjectLocation{
				Hosting:      HostingNotABug,
				VCS:          VCSGit,
				RepoAddress:  "https://notabug.org/x/y.git",
				SourceCode:   "https://notabug.org/x/y",
				IssueTracker: "https://notabug.org/x/y/issues",
			},
		},
		{
			name: "generic https ending in .git",
			url:  "https://git.example.org/foo.git",
			want: ProjectLocation{
				Hosting:     HostingRawGit,
				VCS:         VCSGit,
				RepoAddress: "https://git.example.org/foo.git",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := c.Classify(test.url)
			if err != nil {
				t.Fatalf("Classify(%q) failed: %v", test.url, err)
			}
			if *got != test.want {
				t.Errorf("Classify(%q) = %+v, want %+v", test.url, *got, test.want)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	c, _ := newTestClassifier()
	first, err := c.Classify("https://github.com/x/y")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	second, err := c.Classify("https://github.com/x/y")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if *first != *second {
		t.Errorf("identical input produced different results: %+v vs %+v", first, second)
	}
}

func TestClassifyUnsupported(t *testing.T) {
	c, _ := newTestClassifier()

	for _, url := range []string{
		"ftp://example.com/x",
		"https://example.com/project",
		"http://github.com/x/y",
		"git@github.com:x/y.git",
		"",
	} {
		_, err := c.Classify(url)
		if err == nil {
			t.Errorf("Classify(%q) succeeded, expected UnsupportedLocationError", url)
			continue
		}
		if !IsUnsupportedLocation(err) {
			t.Errorf("Classify(%q) = %v, expected UnsupportedLocationError", url, err)
		}
	}
}

func TestClassifyBitbucketScraped(t *testing.T) {
	c, mock := newTestClassifier()
	mock.AddResponse("https://bitbucket.org/x/y", 200,
		`<a data-fetch-url="https://bitbucket.org/x/y.git">clone</a>`)

	loc, err := c.Classify("https://bitbucket.org/x/y/")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if loc.Hosting != HostingBitbucket {
		t.Errorf("expected bitbucket hosting, got %s", loc.Hosting)
	}
	if loc.VCS != VCSGit {
		t.Errorf("expected git vcs, got %s", loc.VCS)
	}
	if loc.RepoAddress != "https://bitbucket.org/x/y.git" {
		t.Errorf("unexpected repo address %q", loc.RepoAddress)
	}
	if loc.SourceCode != "https://bitbucket.org/x/y/src" {
		t.Errorf("unexpected source link %q", loc.SourceCode)
	}
	if loc.IssueTracker != "https://bitbucket.org/x/y/issues" {
		t.Errorf("unexpected issue tracker %q", loc.IssueTracker)
	}
}

func TestClassifyBitbucketMercurial(t *testing.T) {
	c, mock := newTestClassifier()
	mock.AddResponse("https://bitbucket.org/x/y", 200,
		`<a data-fetch-url="https://bitbucket.org/x/y">clone</a>`)

	loc, err := c.Classify("https://bitbucket.org/x/y")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if loc.VCS != VCSHg {
		t.Errorf("expected hg vcs for non-.git fetch url, got %s", loc.VCS)
	}
}

func TestClassifyBitbucketScrapeFailureWrapped(t *testing.T) {
	c, mock := newTestClassifier()
	mock.AddResponse("https://bitbucket.org/x/y", 500, "server error")

	_, err := c.Classify("https://bitbucket.org/x/y")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsUnsupportedLocation(err) {
		t.Errorf("expected UnsupportedLocationError, got %v", err)
	}
	// The underlying fetch failure stays reachable through the wrap
	if !IsScrapeFetch(err) {
		t.Errorf("expected wrapped ScrapeFetchError, got %v", err)
	}
}

func TestClassifyScrapedAddressValidation(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{"address with space", `data-fetch-url="https://bitbucket.org/x/y bad.git"`},
		{"ssh style address", `data-fetch-url="git@bitbucket.org:x/y.git"`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, mock := newTestClassifier()
			mock.AddResponse("https://bitbucket.org/x/y", 200, test.page)

			_, err := c.Classify("https://bitbucket.org/x/y")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var addrErr *InvalidRepoAddressError
			if !errors.As(err, &addrErr) {
				t.Errorf("expected InvalidRepoAddressError, got %v", err)
			}
		})
	}
}

func TestValidateBzrExempt(t *testing.T) {
	loc := ProjectLocation{VCS: VCSBzr, RepoAddress: "lp:someproject"}
	if err := loc.Validate(); err != nil {
		t.Errorf("bzr address should be exempt from the scheme check, got %v", err)
	}
}

func TestValidateEmptyAddress(t *testing.T) {
	loc := ProjectLocation{VCS: VCSGit}
	if err := loc.Validate(); err == nil {
		t.Error("expected empty address to fail validation")
	}
}
