package baseball

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedBody = `[
	{
		"Player name": "Babe Ruth",
		"position": "RF",
		"Games": 140,
		"At-bat": 500,
		"Runs": 150,
		"Hits": 200,
		"Double (2B)": 30,
		"third baseman": 5,
		"home run": 20,
		"run batted in": 130,
		"a walk": 100,
		"Strikeouts": 80,
		"stolen base": 10,
		"Caught stealing": 4
	},
	{
		"Player name": "Lou Gehrig",
		"position": "1B",
		"Games": 0,
		"At-bat": 0,
		"Hits": 0
	}
]`

func TestFetchPlayers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(feedBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, 60, nil)
	records, err := c.FetchPlayers(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	ruth := records[0]
	assert.Equal(t, "Babe Ruth", ruth.PlayerName)
	assert.Equal(t, "RF", ruth.Position)
	assert.Equal(t, 5, ruth.Triples, "feed's 'third baseman' column is triples")
	assert.Equal(t, 100, ruth.Walks, "feed's 'a walk' column is walks")
	assert.Equal(t, 30, ruth.Doubles)
}

func TestFetchPlayers_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, 60, nil)
	_, err := c.FetchPlayers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchPlayers_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, 60, nil)
	_, err := c.FetchPlayers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestRecordToPlayer(t *testing.T) {
	rec := Record{
		PlayerName: "Babe Ruth",
		Position:   "RF",
		Games:      140,
		AtBats:     500,
		Hits:       200,
		Doubles:    30,
		Triples:    5,
		HomeRuns:   20,
		Walks:      100,
	}
	p, err := rec.ToPlayer()
	require.NoError(t, err)

	assert.Equal(t, "Babe Ruth", p.ExternalID)
	assert.Equal(t, 0.400, p.BattingAverage)
	assert.Equal(t, 0.500, p.OnBasePercentage)
	assert.InDelta(t, 1.429, p.HitsPerGame, 0.0005)
	assert.False(t, p.IsEdited)
	assert.Nil(t, p.Description)
}

func TestRecordToPlayer_MissingName(t *testing.T) {
	_, err := Record{Position: "C"}.ToPlayer()
	assert.Error(t, err)
}
