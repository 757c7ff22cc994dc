/*
Package chaindb stores trained chain snapshots in SQLite, keyed by name,
so several chains can share a single database file.

It speaks plain database/sql and works with any SQLite driver; this
repository uses modernc.org/sqlite by default and mattn/go-sqlite3 when
built with cgo support.
*/
package chaindb
