package dto

import (
	"github.com/akdl/audioknigi-dl/internal/model"
)

// JSONTrack represents one chapter record from the site's playlist
// payload (the aItems field of the player AJAX response).
type JSONTrack struct {
	MP3   string `json:"mp3"`
	Title string `json:"title"`
}

// ToTrack converts a JSONTrack to a model.Track. The media URL passes
// through unchanged; the title is slugified for the file name inside
// model.NewTrack.
func (jt *JSONTrack) ToTrack(number int) *model.Track {
	return model.NewTrack(number, jt.Title, jt.MP3)
}
