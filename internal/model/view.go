package model

// View is what the viewer hands to displays: the frame being shown, the
// window title and the color name resolved from the catalog.
type View struct {
	Frame *Frame
	Title string
	Color string
}
