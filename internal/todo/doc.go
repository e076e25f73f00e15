// Package todo holds the task list: the Task type, the in-memory store that
// owns the authoritative list, draft validation, and the durable encoding.
//
// The durable document is a JSON array of tasks:
//
//	[
//	  {
//	    "id": 1718000000000,
//	    "title": "Buy milk",
//	    "description": "",
//	    "completed": false
//	  }
//	]
//
// # Ordering
//
// The store keeps every incomplete task ahead of every completed task.
// Within each group the insertion order is preserved (stable sort on the
// completion flag only). Every mutating operation except Remove and Clear
// re-sorts.
//
// # Validation
//
// Drafts are validated at the boundary (create and edit):
//   - title: required after trimming, at most 150 characters
//   - description: optional, at most 500 characters
//
// Decoding a stored document checks its shape against an embedded JSON
// Schema (draft 2020-12). Field lengths are not re-checked on load.
//
// # File Format
//
// When encoding, the package uses:
//   - 2-space indentation
//   - Trailing newline
package todo
