package domain

// View is what the map shows: a center and a tile zoom level.
type View struct {
	Center Coordinates `json:"center"`
	Zoom   int         `json:"zoom"`
}
