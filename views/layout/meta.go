package layout

import (
	"strings"
)

const (
	SiteName           = "MedPrice AI"
	DefaultTitle       = "MedPrice AI - Medical Claims Processing"
	DefaultDescription = "Advanced AI-powered medical price extraction and claims processing SaaS"
)

// PageMeta carries the document-level values every page renders in <head>.
type PageMeta struct {
	Title        string
	Description  string
	CanonicalURL string
	// NoIndex keeps private pages (dashboard, auth flows) out of search results.
	NoIndex bool
}

// NewPageMeta creates a PageMeta with site-wide defaults for path.
func NewPageMeta(siteURL, path string) PageMeta {
	return PageMeta{
		Title:        DefaultTitle,
		Description:  DefaultDescription,
		CanonicalURL: BuildAbsoluteURL(siteURL, path),
	}
}

// WithTitle sets a page title, suffixed with the site name.
func (pm PageMeta) WithTitle(title string) PageMeta {
	pm.Title = ComposeTitle(title)
	return pm
}

// Private marks the page as not indexable.
func (pm PageMeta) Private() PageMeta {
	pm.NoIndex = true
	return pm
}

// ComposeTitle appends the site name unless the title already carries it.
func ComposeTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultTitle
	}
	if strings.HasSuffix(title, " - "+SiteName) || title == SiteName {
		return title
	}
	return title + " - " + SiteName
}

// BuildAbsoluteURL constructs an absolute URL from a path
func BuildAbsoluteURL(siteURL, path string) string {
	if path == "" {
		return siteURL
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	siteURL = strings.TrimSuffix(siteURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return siteURL + path
}
