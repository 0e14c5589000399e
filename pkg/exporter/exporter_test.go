package exporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/campusboard/pkg/board"
	"tableflip.dev/campusboard/pkg/notice"
)

func snapshot() board.Snapshot {
	return board.Snapshot{
		Notices: []notice.Notice{{ID: 1, Title: "Exams & results", Description: "50% done, see room #4", Date: "2026-02-12", Department: "all", Category: "academic", Urgent: true}},
		Events:  []notice.Event{{ID: 2, Title: "Fest", Date: "2026-02-20", Time: "10:00", Venue: "Ground"}},
		Users:   []notice.User{{ID: 3, Name: "Jane", Username: "jane", Password: "pw", Role: notice.RoleStudent}},
	}
}

func TestJSONHasThreeCollections(t *testing.T) {
	b, err := JSON(snapshot(), "  ")
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Len(t, doc, 3)
	for _, k := range []string{"notices", "events", "users"} {
		assert.Contains(t, doc, k)
	}
}

func TestDataURI(t *testing.T) {
	uri, err := DataURI(snapshot())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, DataURIPrefix))

	payload := strings.TrimPrefix(uri, DataURIPrefix)
	for _, c := range []string{" ", "&", "#", "\"", "{", "+"} {
		assert.NotContains(t, payload, c)
	}

	back, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, snapshot(), back)
}

func TestDecodeRejectsOtherURIs(t *testing.T) {
	_, err := DecodeDataURI("data:text/plain,hello")
	assert.Error(t, err)
}

func TestPDF(t *testing.T) {
	snap := snapshot()
	b, err := PDF(Sheet{Notices: snap.Notices, Events: snap.Events})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))
}
