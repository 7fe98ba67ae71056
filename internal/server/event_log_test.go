package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/drawpoker/poker"
)

func decodeEvents(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var events []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var ev map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev), scanner.Text())
		events = append(events, ev)
	}
	return events
}

func TestEventLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewEventLog(&buf)

	log.OnGameStart(GameStart{GameID: 2, Players: []string{"alice", "bob"}})
	log.OnGameComplete(GameOutcome{
		GameID:     2,
		WinnerID:   1,
		WinnerName: "bob",
		Layout:     poker.TwoPairs,
		Stake:      600,
		Seats: []SeatOutcome{
			{PlayerID: 0, Name: "alice", Folded: true, Cash: 9700},
			{PlayerID: 1, Name: "bob", Cards: poker.MustParseCards("TWO-CLUBS", "TWO-HEARTS", "NINE-CLUBS", "NINE-HEARTS", "KING-SPADES"), Layout: poker.TwoPairs, Scored: true, Cash: 10300},
		},
	})
	log.OnGameComplete(GameOutcome{GameID: 3, Aborted: true, Stake: 100})

	events := decodeEvents(t, &buf)
	require.Len(t, events, 3)

	assert.Equal(t, "game_start", events[0]["event"])
	assert.Equal(t, []any{"alice", "bob"}, events[0]["players"])
	assert.Contains(t, events[0], "time")

	complete := events[1]
	assert.Equal(t, "game_complete", complete["event"])
	assert.Equal(t, "bob", complete["winner"])
	assert.Equal(t, "TWO_PAIRS", complete["layout"])
	assert.Equal(t, float64(600), complete["stake"])
	seats, ok := complete["seats"].([]any)
	require.True(t, ok)
	require.Len(t, seats, 2)
	bob := seats[1].(map[string]any)
	assert.Equal(t, "TWO-CLUBS TWO-HEARTS NINE-CLUBS NINE-HEARTS KING-SPADES", bob["cards"])
	assert.NotContains(t, seats[0].(map[string]any), "layout")

	assert.Equal(t, "game_aborted", events[2]["event"])
}
