// Package styles maps diagram semantics onto visual descriptors.
//
// Node kinds resolve to a [Shape] and a base [Palette]. Lifecycle status
// replaces the palette with one of three fixed status palettes; a node's
// custom color replaces only the base fill and only when no status is set.
//
// Connection kinds resolve to an [EdgeStyle]: line color, dash, arrow heads
// and the label shown when the author gave none. A custom edge color wins
// over the kind's color.
//
// Both lookup tables are arrays indexed by kind and sized by the kind count,
// so a new kind without a style entry does not compile.
//
// Label helpers [WrapLabel] and [StripDirectionPrefix] prepare edge text for
// display.
package styles
