//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jsphweid/musictools/cmd"
	"github.com/jsphweid/musictools/midi"
	"github.com/jsphweid/musictools/model"
	"github.com/jsphweid/musictools/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var server *httptest.Server

func TestMain(m *testing.M) {
	server = httptest.NewServer(cmd.NewRouter())
	exitVal := m.Run()
	server.Close()
	os.Exit(exitVal)
}

func post(t *testing.T, path string, body any) *http.Response {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(server.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// The explorer hands out a chord string that works as a melody scale.
func TestChordBecomesMelodyScale(t *testing.T) {
	assert := assert.New(t)

	resp := post(t, "/explorer", model.ExplorerRequest{
		Scale: "C-2741",
		Edits: []model.ExplorerEdit{
			{Kind: "chord_degree", Degree: 4, On: true},
			{Kind: "chord_degree", Degree: 7, On: true},
			{Kind: "chord_degree", Degree: 11, On: true},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var explored struct {
		Views struct {
			Chord struct {
				Canonical string `json:"canonical"`
			} `json:"chord"`
		} `json:"views"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&explored))
	assert.Equal("E-137", explored.Views.Chord.Canonical)

	s := settings.Default()
	s.Scale = explored.Views.Chord.Canonical
	s.Length = 3
	s.InitialX = "0"
	s.NewX = "x+1"
	s.Pitch = "x"
	s.Duration = "1"
	s.Rest = "False"
	s.Velocity = "100"

	resp = post(t, "/melody", s)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rendered model.MelodyResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rendered))

	file, err := http.Get(server.URL + "/melody/" + rendered.ID)
	require.NoError(t, err)
	defer file.Body.Close()
	data, err := io.ReadAll(file.Body)
	require.NoError(t, err)

	sm, err := midi.Read(bytes.NewReader(data))
	require.NoError(t, err)
	var pitches []uint8
	for _, n := range midi.Notes(sm) {
		pitches = append(pitches, n.Pitch)
	}
	// E G B
	assert.Equal([]uint8{52, 55, 59}, pitches)
}
