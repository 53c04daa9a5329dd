// Package store provides the process-local key-value persistence the
// register runs on. Each key names a single slot holding one JSON document;
// repositories own the document shapes and their default seeding.
package store

import "errors"

// Well-known slot names. They mirror the storage keys the register UI has
// always used, so an existing data directory keeps working.
const (
	KeyProducts   = "mm_products"
	KeyCategories = "mm_categories"
	KeyUsers      = "mm_users"
	KeySettings   = "mm_settings"
	KeySales      = "mm_sales"
	KeyCheckout   = "mm_checkout"
	KeyEvents     = "mm_events"
)

// ErrInvalidKey is returned when a slot name is empty or unsafe to map to a file.
var ErrInvalidKey = errors.New("store: invalid key")

// Store is a named-slot JSON document store. Get reports ok=false when the
// slot is absent; a slot holding malformed JSON surfaces as an error so the
// caller can decide whether to degrade or fail.
type Store interface {
	Get(key string, into any) (bool, error)
	Put(key string, value any) error
	Delete(key string) error
}
