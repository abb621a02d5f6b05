// Package devserver serves a built site locally and reloads open pages
// when the sources change.
//
// A Hub keeps the connected browsers and pushes the id of every finished
// build over a websocket; the client script reloads when the id changes.
// A Watcher turns bursts of file system events into single rebuilds.
package devserver
