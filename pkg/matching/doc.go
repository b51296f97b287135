// Package matching matches recipes against a pantry and ranks them.
// Every function is pure: it reads its arguments, never mutates them, and
// returns freshly allocated results, so calls may run concurrently.
package matching
