// Package model defines shared data structures.
package model

// Durations lists the selectable challenge lengths in seconds.
var Durations = []int{15, 30, 60, 120}

// Config defines practice settings.
type Config struct {
	Lang        string `validate:"required"`
	Seconds     int    `validate:"oneof=15 30 60 120"`
	Words       int    `validate:"min=1,max=10000"`
	WordlistDir string
	LogLevel    string `validate:"oneof=trace debug info warn warning error fatal panic"`
}
