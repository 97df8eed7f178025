// Package migration embeds the goose migrations for the Postgres stores.
// Table names are substituted from STORE_ORDERS_TABLE and
// STORE_SEAT_INVENTORY_TABLE.
package migration

import "embed"

//go:embed *.sql
var FS embed.FS
