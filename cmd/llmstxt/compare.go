package main

import (
	"fmt"
	"regexp"

	"github.com/fwojciec/llmstxt"
	llmshttp "github.com/fwojciec/llmstxt/http"
)

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	filter, err := buildFilter(c.Include, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmstxt.ErrorMessage(err))
		return err
	}

	site, err := deps.Comparator.CompareSite(deps.Ctx, c.URL, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmstxt.ErrorMessage(err))
		return err
	}

	pages := site.Pages
	if c.Limit > 0 && len(pages) > c.Limit {
		pages = pages[:c.Limit]
	}

	for _, p := range pages {
		fmt.Fprintf(deps.Stdout, "%-60s %10s -> %10s (%.0f%%)\n",
			truncateURL(p.PageURL, 60),
			llmshttp.FormatBytes(p.HTMLBytes),
			llmshttp.FormatBytes(p.MarkdownBytes),
			p.Savings*100,
		)
	}

	fmt.Fprintf(deps.Stdout, "\nTotal: %s HTML (%s) -> %s markdown (%s), %.0f%% smaller across %d pages\n",
		llmshttp.FormatBytes(site.HTMLBytes),
		llmshttp.FormatTokens(site.HTMLTokens),
		llmshttp.FormatBytes(site.MarkdownBytes),
		llmshttp.FormatTokens(site.MarkdownTokens),
		site.Savings*100,
		len(site.Pages),
	)
	return nil
}

// buildFilter compiles include/exclude regex flags into a URLFilter.
func buildFilter(include, exclude []string) (*llmstxt.URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	filter := &llmstxt.URLFilter{}
	for _, pattern := range include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, llmstxt.Errorf(llmstxt.EINVALID, "invalid include pattern %q: %v", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, llmstxt.Errorf(llmstxt.EINVALID, "invalid exclude pattern %q: %v", pattern, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}

// truncateURL shortens a URL for display, keeping the end which is
// more informative.
func truncateURL(url string, maxLen int) string {
	if len(url) <= maxLen {
		return url
	}
	if maxLen < 4 {
		return url[:maxLen]
	}
	return "..." + url[len(url)-maxLen+3:]
}
