package drawio

import "encoding/xml"

// MxFile is the root element of a draw.io document.
type MxFile struct {
	XMLName  xml.Name  `xml:"mxfile"`
	Host     string    `xml:"host,attr,omitempty"`
	Agent    string    `xml:"agent,attr,omitempty"`
	Version  string    `xml:"version,attr,omitempty"`
	Pages    int       `xml:"pages,attr"`
	Diagrams []Diagram `xml:"diagram"`
}

// Diagram is one page.
type Diagram struct {
	Name  string       `xml:"name,attr"`
	ID    string       `xml:"id,attr"`
	Model MxGraphModel `xml:"mxGraphModel"`
}

// MxGraphModel holds the page settings and cell tree.
type MxGraphModel struct {
	Dx         int     `xml:"dx,attr"`
	Dy         int     `xml:"dy,attr"`
	Grid       int     `xml:"grid,attr"`
	GridSize   int     `xml:"gridSize,attr"`
	Guides     int     `xml:"guides,attr"`
	Tooltips   int     `xml:"tooltips,attr"`
	Connect    int     `xml:"connect,attr"`
	Arrows     int     `xml:"arrows,attr"`
	Fold       int     `xml:"fold,attr"`
	Page       int     `xml:"page,attr"`
	PageScale  float64 `xml:"pageScale,attr"`
	PageWidth  int     `xml:"pageWidth,attr"`
	PageHeight int     `xml:"pageHeight,attr"`
	Math       int     `xml:"math,attr"`
	Shadow     int     `xml:"shadow,attr"`
	Root       Root    `xml:"root"`
}

// Root lists the cells of a page.
type Root struct {
	Cells []MxCell `xml:"mxCell"`
}

// MxCell is a vertex, an edge or one of the structural root cells.
type MxCell struct {
	ID          string    `xml:"id,attr"`
	Parent      string    `xml:"parent,attr,omitempty"`
	Value       string    `xml:"value,attr,omitempty"`
	Style       string    `xml:"style,attr,omitempty"`
	Vertex      string    `xml:"vertex,attr,omitempty"`
	Edge        string    `xml:"edge,attr,omitempty"`
	Source      string    `xml:"source,attr,omitempty"`
	Target      string    `xml:"target,attr,omitempty"`
	Connectable string    `xml:"connectable,attr,omitempty"`
	Geometry    *Geometry `xml:"mxGeometry,omitempty"`
}

// Geometry positions a cell. For edges X is the label position along the
// connector (-1..1) and Y the label's perpendicular offset in pixels.
type Geometry struct {
	X        float64 `xml:"x,attr,omitempty"`
	Y        float64 `xml:"y,attr,omitempty"`
	Width    float64 `xml:"width,attr,omitempty"`
	Height   float64 `xml:"height,attr,omitempty"`
	Relative string  `xml:"relative,attr,omitempty"`
	As       string  `xml:"as,attr"`
}

func newModel() MxGraphModel {
	return MxGraphModel{
		Dx: 1422, Dy: 794,
		Grid: 1, GridSize: 10,
		Guides: 1, Tooltips: 1, Connect: 1, Arrows: 1, Fold: 1,
		Page: 1, PageScale: 1, PageWidth: 1169, PageHeight: 827,
		Root: Root{Cells: []MxCell{
			{ID: "0"},
			{ID: "1", Parent: "0"},
		}},
	}
}

func vertex(id, value, style string, x, y, w, h float64) MxCell {
	return MxCell{
		ID: id, Parent: "1", Value: value, Style: style, Vertex: "1",
		Geometry: &Geometry{X: x, Y: y, Width: w, Height: h, As: "geometry"},
	}
}
