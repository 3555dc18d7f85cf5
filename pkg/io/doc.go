// Package io reads and writes trees and colorings.
//
// # Formats
//
// Three formats are supported, chosen by [FormatFromPath] from the file
// extension:
//
//   - JSON (.json) and YAML (.yaml, .yml): a node list and an edge list.
//   - Parent list (.txt): whitespace-separated parent indices, -1 for the
//     root, e.g. "-1 0 0 1".
//
// The JSON form:
//
//	{
//	  "nodes": [
//	    {"id": "root"},
//	    {"id": "a", "color": "gray"},
//	    {"id": "b"}
//	  ],
//	  "edges": [
//	    {"from": "root", "to": "a"},
//	    {"from": "root", "to": "b"}
//	  ]
//	}
//
// Edges point from parent to child. Exactly one node has no incoming edge;
// it becomes the root. Children keep the order in which they appear in the
// node list. The optional "color" field is written by [WriteJSON] when a
// coloring is supplied and ignored on input.
//
// YAML uses the same field names.
//
// # Errors
//
// Structural problems (duplicate ids, unknown edge endpoints, nodes with
// two parents, cycles, several roots) are reported as INVALID_TREE errors
// from package errors; malformed documents as INVALID_FORMAT; missing
// files as FILE_NOT_FOUND.
package io
