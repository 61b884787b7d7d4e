package crawl

import (
	"net/url"
	"path"
	"strings"
)

// skipExt lists path extensions that never lead to readable text.
var skipExt = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, ext := range []string{
		".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico", ".bmp",
		".css", ".js", ".mjs", ".json", ".xml",
		".woff", ".woff2", ".ttf", ".eot",
		".mp4", ".webm", ".mp3", ".wav",
		".zip", ".tar", ".gz",
		".pdf", ".doc", ".docx", ".xls", ".xlsx",
	} {
		m[ext] = struct{}{}
	}
	return m
}()

// scope admits pages on a single host.
type scope struct {
	host string
}

func newScope(host string) scope {
	return scope{host: strings.ToLower(host)}
}

// admit returns the canonical form of rawURL if it is a page on the scope's
// host. Assets and unparsable links are rejected.
func (s scope) admit(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || strings.ToLower(u.Host) != s.host {
		return "", false
	}
	if _, asset := skipExt[strings.ToLower(path.Ext(u.Path))]; asset {
		return "", false
	}
	return canonical(u), true
}

// canonical lowercases the host and drops the fragment and any trailing
// slash, except on the root path. Two links to one page compare equal.
func canonical(u *url.URL) string {
	c := *u
	c.Host = strings.ToLower(c.Host)
	c.Fragment, c.RawFragment = "", ""
	if c.Path != "/" && strings.HasSuffix(c.Path, "/") {
		c.Path = strings.TrimRight(c.Path, "/")
		c.RawPath = ""
	}
	return c.String()
}
