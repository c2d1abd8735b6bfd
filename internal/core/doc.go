// Package core provides the business logic for the menu manager.
//
// This package holds every menu rule independent of any UI or transport
// layer. The web server and the terminal UI both drive it through [Service].
//
// # Architecture
//
//   - Store: the ordered, append-only list of [MenuItem] values. Items are
//     validated on [Store.Add]; there is no update or delete.
//   - Export: [MapItem] flattens one item onto the WooCommerce product
//     import columns ([ExportColumns]); [WriteCSV] writes a whole file.
//   - Add-ons: an item's [AddonSet] expands to WP Cafe option groups,
//     serialized as JSON into the "Meta: reserv_extra_fields" column.
//   - Service: wraps one Store with a lock, records audit entries and runs
//     CSV imports.
//
// # Input Validation
//
// Form and CSV input arrives as strings keyed by [FieldSpec.Key]. [ParseItem]
// checks them against [MenuFieldSpecs] and reports every problem at once as
// [ValidationErrors]:
//
//	item, err := core.ParseItem(map[string]string{
//	    "name": "Wings", "category": "Wings", "price": "$9.99",
//	    "description": "Crispy", "sku": "WNG-001",
//	})
//
// Struct-level invariants on MenuItem are enforced with validator tags.
//
// # Import
//
// [Service.Import] streams a CSV with a BOM-tolerant, size-limited reader.
// Bad rows are collected as [FailedRow] values; good rows are added together
// once the whole file has been read.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - VAL001-VAL006: Validation errors (fields, prices, enums, columns)
//   - FILE001-FILE004: File errors (size, format, empty, missing)
//   - REQ001-REQ003: Request errors (cancelled, timeout, bad body)
//   - RATE001-RATE002, AUTH001-AUTH002: Rate limiting and API keys
//
// # Audit Logging
//
// Adds, imports and exports are recorded through an [AuditSink] with
// severity levels:
//
//   - Low: Exports
//   - Medium: Single item adds
//   - High: Imports
//
// [MemoryAudit] keeps a bounded ring; [PgAudit] writes to Postgres and is
// pruned by [StartAuditRetention].
package core
