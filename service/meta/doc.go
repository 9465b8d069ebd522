// Package meta loads declarative assets (for example the engine
// configuration) from any location supported by the abstract file system –
// local files, in-memory locations or cloud storage – and caches the decoded
// bytes until explicitly refreshed.
package meta
