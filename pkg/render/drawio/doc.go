// Package drawio assembles laid-out diagram pages into draw.io documents.
//
// # Overview
//
// A draw.io file is an XML tree:
//
//	mxfile[pages]
//	  diagram[name, id]
//	    mxGraphModel
//	      root
//	        mxCell (vertex or edge) > mxGeometry
//
// [Assemble] turns one prepared page into a [Diagram]. Cells are emitted in a
// fixed order: the two root cells, boundary containers (shallowest first),
// regular nodes, connectors and finally the status legend. Every cell hangs
// off the default layer "1" and carries absolute page coordinates.
//
// # Composite Nodes
//
// Tables become a transparent frame, a header and one row cell per column;
// connectors with a column handle attach to the row cell. Clients become a
// round head above a labelled body.
//
// # Connectors
//
// Connector styles carry the exit and entry points computed by
// [layout.Allocate] plus a jetty size that grows with the port rank, so
// parallel connectors leave a side at different distances. Labels of edges
// sharing a node pair are spread along the connector and alternate above and
// below it.
//
// Edges whose endpoints cannot be resolved to an emitted cell are skipped and
// counted in [Stats].
//
// # Writing
//
// [NewFile] wraps pages into an [MxFile]; [Encode] writes it with an XML
// header.
package drawio
