// Package fetch retrieves rule lists from remote (or local file://) sources.
//
// A fetch issues one HTTP GET per attempt with a bounded timeout, reads the
// whole body, decodes it as UTF-8 (a byte-order mark is stripped and
// undecodable bytes become U+FFFD) and returns the trimmed, non-empty lines.
// Failures are reported as *domain.FetchError and are local to one source.
//
// # Usage
//
//	client := fetch.NewClient(fetch.DefaultClientConfig())
//	f := fetch.NewHTTPFetcher(client, fetch.DefaultConfig(), logger)
//
//	rules, err := f.Fetch(ctx, "https://example.org/filters.txt")
//	if domain.IsKind(err, domain.KindBadStatus) {
//	    // the server answered with a non-2xx status
//	}
//
// # Custom Clients
//
// Any type with a Do(*http.Request) method can be injected, which is how
// tests and alternative transports plug in.
package fetch
