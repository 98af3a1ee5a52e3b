package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertTaskWireShape(t *testing.T) {
	task := ConvertTask{
		VideoFID: "videos/0b26c8a2.mp4",
		Username: "alice",
	}

	b, err := json.Marshal(task)
	require.NoError(t, err)

	// The consumer fills mp3_fid later; it must be present and null on publish.
	assert.JSONEq(t, `{"video_fid":"videos/0b26c8a2.mp4","mp3_fid":null,"username":"alice"}`, string(b))
}
