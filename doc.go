// Package adhosts builds a hosts-file blocklist from adblock-style rule lists.
//
// Every configured source is fetched concurrently. Lines of the form
// "||domain^" are converted to "0.0.0.0 domain" entries, raw lines and
// entries are deduplicated across all sources, and the result is written
// atomically as an annotated hosts file.
//
// Example usage:
//
//	cfg := adhosts.DefaultConfig()
//	cfg.Output = "/etc/adblock/hosts.txt"
//	summary, err := adhosts.Run(context.Background(), cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if summary.NoData {
//	    log.Print("nothing fetched, previous file kept")
//	}
//
// A source that cannot be fetched is reported in the artifact header and in
// [Summary.Result] but never fails the run. A run that yields no entries at
// all skips the write and sets [Summary.NoData].
//
// # Dependency Injection
//
// For testing, substitute the network or the logger:
//
//	summary, err := adhosts.Run(ctx, cfg,
//	    adhosts.WithHTTPClient(ts.Client()),
//	    adhosts.WithLogger(customLogger),
//	)
package adhosts
