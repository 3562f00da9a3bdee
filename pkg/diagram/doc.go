// Package diagram defines the architecture diagram snapshot consumed by the export
// engine and the read-only views computed from it.
//
// A snapshot is a flat collection of nodes and edges with string-keyed
// cross-references. Nothing in this package mutates its input; every view is
// rebuilt from the snapshot it is given, which keeps exports independent of each
// other and trivially testable.
//
// # Core Types
//
//   - [Document]: the input file, either a list of [Workspace] pages or a single
//     implicit page
//   - [Node], [Edge]: canvas elements with geometry and semantic payload
//   - [ComponentKind], [ConnectionKind], [Status]: closed enumerations parsed from
//     the free-form type strings of the editor
//   - [Index]: absolute geometry for one page, resolved through the parent tree
//
// # Document Format
//
// Documents are JSON (or YAML with the same field names):
//
//	{
//	  "workspaces": [{
//	    "name": "Payments",
//	    "nodes": [
//	      {"id": "api", "position": {"x": 100, "y": 80},
//	       "data": {"type": "service", "label": "Payments API", "status": "new"}},
//	      {"id": "db", "position": {"x": 100, "y": 320},
//	       "data": {"type": "database", "label": "Ledger", "technology": "PostgreSQL"}}
//	    ],
//	    "edges": [
//	      {"id": "e1", "source": "api", "target": "db",
//	       "data": {"connectionType": "database-connection"}}
//	    ]
//	  }]
//	}
//
// When "workspaces" is absent, top-level "nodes" and "edges" form one page named
// [DefaultPageName].
//
// # Geometry
//
// Node positions are relative to their parent. [NewIndex] resolves absolute
// rectangles by summing local positions up the parent chain. A parent chain that
// loops back on itself is reported once and the affected nodes keep their local
// coordinates.
package diagram
