// Package proxy mounts configured upstreams under path prefixes of the web
// server and rewrites absolute links in proxied HTML so they stay under the
// mount point.
package proxy

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Route maps a path prefix to an upstream base URL.
type Route struct {
	Prefix string
	Target *url.URL
}

// Table holds routes sorted longest prefix first.
type Table struct {
	routes []Route
}

// ParseRoutes builds a Table from the proxy.routes config map
// (prefix -> upstream URL). Prefixes are normalized to start and end with "/".
func ParseRoutes(m map[string]string) (*Table, error) {
	t := &Table{}
	for prefix, target := range m {
		u, err := url.Parse(target)
		if err != nil {
			return nil, fmt.Errorf("proxy route %q: %w", prefix, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("proxy route %q: target %q must be an absolute URL", prefix, target)
		}
		if !strings.HasPrefix(prefix, "/") {
			prefix = "/" + prefix
		}
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		t.routes = append(t.routes, Route{Prefix: prefix, Target: u})
	}
	sort.Slice(t.routes, func(i, j int) bool {
		return len(t.routes[i].Prefix) > len(t.routes[j].Prefix)
	})
	return t, nil
}

// Len reports the number of configured routes.
func (t *Table) Len() int { return len(t.routes) }

// Match returns the longest route whose prefix matches path.
func (t *Table) Match(path string) (Route, bool) {
	for _, rt := range t.routes {
		if strings.HasPrefix(path, rt.Prefix) || path+"/" == rt.Prefix {
			return rt, true
		}
	}
	return Route{}, false
}

// Wrap returns a handler that serves matching paths through the proxy and
// passes everything else to next.
func (t *Table) Wrap(next http.Handler) http.Handler {
	if t == nil || len(t.routes) == 0 {
		return next
	}
	proxies := make(map[string]*httputil.ReverseProxy, len(t.routes))
	for _, rt := range t.routes {
		proxies[rt.Prefix] = newProxy(rt)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rt, ok := t.Match(r.URL.Path); ok {
			proxies[rt.Prefix].ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func newProxy(rt Route) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Director: func(req *http.Request) {
			req.URL.Scheme = rt.Target.Scheme
			req.URL.Host = rt.Target.Host
			rest := strings.TrimPrefix(req.URL.Path, rt.Prefix)
			req.URL.Path = singleJoin(rt.Target.Path, rest)
			req.Host = rt.Target.Host
			// Compressed bodies cannot be rewritten.
			req.Header.Set("Accept-Encoding", "identity")
		},
		ModifyResponse: func(resp *http.Response) error {
			if !strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
				return nil
			}
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return err
			}
			rewritten, err := rewriteLinks(body, rt.Prefix)
			if err != nil {
				// Pass the original through rather than failing the response.
				rewritten = body
			}
			resp.Body = io.NopCloser(bytes.NewReader(rewritten))
			resp.ContentLength = int64(len(rewritten))
			resp.Header.Set("Content-Length", fmt.Sprint(len(rewritten)))
			return nil
		},
	}
}

func singleJoin(a, b string) string {
	a = strings.TrimSuffix(a, "/")
	if !strings.HasPrefix(b, "/") {
		b = "/" + b
	}
	return a + b
}

// linkAttrs are the attributes whose root-absolute values get the mount
// prefix prepended.
var linkAttrs = map[string]bool{"href": true, "src": true, "action": true}

func rewriteLinks(body []byte, prefix string) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for i, a := range n.Attr {
				if !linkAttrs[a.Key] {
					continue
				}
				if strings.HasPrefix(a.Val, "/") && !strings.HasPrefix(a.Val, "//") &&
					!strings.HasPrefix(a.Val, prefix) {
					n.Attr[i].Val = strings.TrimSuffix(prefix, "/") + a.Val
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
