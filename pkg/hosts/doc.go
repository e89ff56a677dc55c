// Package hosts writes a run result as an annotated hosts file.
//
// The artifact starts with a "#"-prefixed header (banner, generation time,
// per-source counts, totals) followed by one "0.0.0.0 <domain>" line per
// entry in the order the pipeline produced them.
//
// Writes are all-or-nothing: the content is staged in a temporary file next
// to the destination, flushed, synced and renamed into place. A failed write
// leaves any previous artifact untouched.
package hosts
