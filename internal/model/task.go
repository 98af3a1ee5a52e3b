package model

// ConvertTask is the work descriptor handed to the conversion workers over
// the message queue. Field names are the wire contract; MP3FID stays null
// until a worker has produced the audio object.
type ConvertTask struct {
	VideoFID string  `json:"video_fid"`
	MP3FID   *string `json:"mp3_fid"`
	Username string  `json:"username"`
}
