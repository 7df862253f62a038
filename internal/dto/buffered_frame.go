package dto

import "time"

// BufferedFrame holds an encoded frame before it is flushed to disk.
type BufferedFrame struct {
	SessionID   string
	Seq         uint64
	Color       string
	DisplayedAt time.Time
	Data        []byte
}
