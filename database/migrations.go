// Package database embeds the SQL migrations for every supported driver.
package database

import "embed"

// Migrations holds one directory per driver family: sqlite3 and oracle.
//
//go:embed migrations
var Migrations embed.FS
