package repohost

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/droidport/droidport/internal/fetch"
)

// ScrapeResult is the vcs kind and clone address extracted from a
// project page. Produced and consumed within a single classification.
type ScrapeResult struct {
	VCS         VCSKind
	RepoAddress string
}

// PageScraper heuristically extracts a repository reference from a
// project page. The heuristics are naive string scans over the raw page
// body and are expected to be brittle; they live behind this narrow
// type so a stronger extraction strategy can replace them without
// touching the classifier.
type PageScraper struct {
	fetcher fetch.Fetcher
}

// NewPageScraper creates a scraper that fetches pages through f.
func NewPageScraper(f fetch.Fetcher) *PageScraper {
	return &PageScraper{fetcher: f}
}

var fetchURLAttr = regexp.MustCompile(`data-fetch-url="(.*?)"`)

// extractor is one page-extraction strategy. It reports whether it found
// a repository reference; a non-nil error means the page looked like a
// match but the address could not be recovered.
type extractor func(page string) (*ScrapeResult, bool, error)

// Ordered strategies, first success wins: the structured fetch-URL
// attribute, then the legacy "hg clone" / "git clone" text markers.
var extractors = []extractor{
	extractFetchURL,
	func(page string) (*ScrapeResult, bool, error) { return extractCloneCommand(page, "hg clone", VCSHg) },
	func(page string) (*ScrapeResult, bool, error) { return extractCloneCommand(page, "git clone", VCSGit) },
}

func extractFetchURL(page string) (*ScrapeResult, bool, error) {
	m := fetchURLAttr.FindStringSubmatch(page)
	if m == nil {
		return nil, false, nil
	}
	repo := m[1]
	if strings.HasSuffix(repo, ".git") {
		return &ScrapeResult{VCS: VCSGit, RepoAddress: repo}, true, nil
	}
	return &ScrapeResult{VCS: VCSHg, RepoAddress: repo}, true, nil
}

func extractCloneCommand(page, marker string, kind VCSKind) (*ScrapeResult, bool, error) {
	index := strings.Index(page, marker)
	if index == -1 {
		return nil, false, nil
	}
	// Skip the marker and the separating space, then cut the address at
	// the next markup or attribute boundary
	start := index + len(marker) + 1
	if start >= len(page) {
		return nil, true, fmt.Errorf("error while getting repo address")
	}
	rest := page[start:]
	end := strings.IndexAny(rest, `<"`)
	if end == -1 {
		return nil, true, fmt.Errorf("error while getting repo address")
	}
	return &ScrapeResult{VCS: kind, RepoAddress: rest[:end]}, true, nil
}

// Scrape fetches pageURL and extracts a repository reference from it.
// Non-http(s) schemes are rejected before any request is made.
func (s *PageScraper) Scrape(pageURL string) (*ScrapeResult, error) {
	if !strings.HasPrefix(pageURL, "http") {
		return nil, &ScrapeFetchError{URL: pageURL, Reason: `does not start with "http"`}
	}

	resp, err := s.fetcher.Get(pageURL)
	if err != nil {
		return nil, &ScrapeFetchError{URL: pageURL, Reason: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		return nil, &ScrapeFetchError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	page, err := fetch.ReadBody(resp)
	if err != nil {
		return nil, &ScrapeFetchError{URL: pageURL, Reason: err.Error()}
	}

	for _, extract := range extractors {
		res, found, err := extract(page)
		if !found {
			continue
		}
		if err != nil {
			return nil, err
		}
		return res, nil
	}

	// Carry the page body for diagnosis; there is nothing else to go on
	return nil, fmt.Errorf("no information found. %s", page)
}
