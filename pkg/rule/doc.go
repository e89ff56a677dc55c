// Package rule converts adblock-style filter rules into hosts-file entries.
//
// Only the plain domain-block shape is understood:
//
//	||example.com^
//	||example.com^$third-party
//	||example.com^ # trailing comment
//
// Every other shape (single-bar anchors, exceptions, element hiding, regex
// rules, bare domains) is rejected. Conversion is pure and never fails; a
// rule either yields an entry or a rejection reason.
//
// # Usage
//
//	v := rule.Convert("||ads.example.com^")
//	if e, ok := v.Entry(); ok {
//	    fmt.Println(e) // 0.0.0.0 ads.example.com
//	}
package rule
