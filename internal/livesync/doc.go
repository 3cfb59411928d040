// Package livesync keeps the signed-in user's bookmarks in memory and in
// step with the server.
//
// A [Synchronizer] merges three independent sources into one [Collection]:
// snapshot fetches, the pushed change stream and revalidation triggers such
// as regained terminal focus. It also drives optimistic adds and deletes.
// Every mutation runs on a single mailbox goroutine, so observers only ever
// see complete views.
//
// Each identity gets its own session. Reset with a different user tears the
// previous session down (change stream and focus trigger together), clears
// the collection and starts a fresh snapshot before any change of the new
// session is shown. One-shot results of an older session are dropped by
// epoch.
package livesync
