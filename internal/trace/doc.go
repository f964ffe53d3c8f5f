// Package trace runs scripts under locator interception.
//
// A dry run executes a script's run function against a recording locator:
// every accessor call is resolved through the real registry, appended to the
// run's record list, and answered with a syntactically valid path that was
// never created on disk. Each run owns its locator and record list, so
// parallel runs of distinct scripts need no synchronization; run functions
// are expected to call the locator from their own goroutine only.
package trace
