// Package session tracks which identity, if any, the client is signed in as.
//
// A [Machine] resolves the race between a one-shot "who is logged in" query
// and a standing auth-change subscription. A fallback timer bounds the time
// spent in [StateResolving]: if neither source answers in time the machine
// settles on [StateUnauthenticated] so dependent views never hang.
//
// State changes only in response to the collaborator. SignIn, Register and
// SignOut merely ask the collaborator to act; success is observed as a later
// transition, failure is returned and reported as a notification.
package session
