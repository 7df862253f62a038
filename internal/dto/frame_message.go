package dto

// FrameMessage is what the hub broadcasts to viewer websockets.
type FrameMessage struct {
	Seq   uint64 `json:"seq"`
	Color string `json:"color"`
	Title string `json:"title"`
	Image string `json:"image"` // base64 JPEG
}
