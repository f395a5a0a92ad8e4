package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/roshambo/internal/protocol"
)

func seatInfo(id, name, choice string) *protocol.SeatInfo {
	return &protocol.SeatInfo{ID: id, Name: name, Choice: choice, Chosen: choice != ""}
}

func TestNewModel(t *testing.T) {
	t.Parallel()

	m := NewModel("ws://localhost:8090/ws")
	require.NotNil(t, m)
	assert.Equal(t, PhaseConnecting, m.phase)
}

func TestModel_ApplyState_SeatedPhase(t *testing.T) {
	t.Parallel()

	m := NewModel("ws://localhost:8090/ws")
	m.phase = PhaseWatching
	m.playerID = "me"

	m.applyState(protocol.GameStatePayload{
		Seats: [2]*protocol.SeatInfo{seatInfo("me", "Alice", ""), nil},
		Round: 0,
	})
	assert.Equal(t, PhaseSeated, m.phase)

	// Losing the seat drops back to watching
	m.applyState(protocol.GameStatePayload{Round: 0})
	assert.Equal(t, PhaseWatching, m.phase)
}

func TestModel_ApplyState_SpectatorStaysWatching(t *testing.T) {
	t.Parallel()

	m := NewModel("ws://localhost:8090/ws")
	m.phase = PhaseWatching
	m.playerID = "me"

	m.applyState(protocol.GameStatePayload{
		Seats: [2]*protocol.SeatInfo{seatInfo("p1", "Alice", ""), seatInfo("p2", "Bob", "")},
	})
	assert.Equal(t, PhaseWatching, m.phase)
}

func TestModel_HandleServerMessage_GameState(t *testing.T) {
	t.Parallel()

	m := NewModel("ws://localhost:8090/ws")
	m.phase = PhaseWatching

	msg := protocol.MustNewMessage(protocol.MsgGameState, protocol.GameStatePayload{
		Seats:  [2]*protocol.SeatInfo{seatInfo("p1", "Alice", "rock"), seatInfo("p2", "Bob", "paper")},
		Round:  1,
		Result: "Player 2 wins!",
	})
	_, cmd := m.handleServerMessage(msg)

	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.state.Round)
	assert.Equal(t, "Player 2 wins!", m.state.Result)
}

func TestModel_HandleServerMessage_History(t *testing.T) {
	t.Parallel()

	m := NewModel("ws://localhost:8090/ws")
	m.phase = PhaseWatching

	msg := protocol.MustNewMessage(protocol.MsgHistoryResult, protocol.HistoryResultPayload{
		Entries: []protocol.RoundEntry{
			{Round: 1, Choices: [2]string{"rock", "scissors"}, Result: "Player 1 wins!", PlayedAt: 1700000000},
		},
	})
	m.handleServerMessage(msg)

	assert.True(t, m.showHistory)
	require.Len(t, m.history, 1)
	assert.Equal(t, 1, m.history[0].Round)
}

func TestModel_ViewRendersSeats(t *testing.T) {
	t.Parallel()

	m := NewModel("ws://localhost:8090/ws")
	m.phase = PhaseWatching
	m.playerName = "SwiftFox1"
	m.state = protocol.GameStatePayload{
		Seats: [2]*protocol.SeatInfo{seatInfo("p1", "Alice", "rock"), nil},
	}

	out := m.View()
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "空位")
	assert.Contains(t, out, "SwiftFox1")
}

func TestModel_ViewShowsResult(t *testing.T) {
	t.Parallel()

	m := NewModel("ws://localhost:8090/ws")
	m.phase = PhaseWatching
	m.state = protocol.GameStatePayload{
		Seats:  [2]*protocol.SeatInfo{seatInfo("p1", "Alice", "rock"), seatInfo("p2", "Bob", "scissors")},
		Round:  1,
		Result: "Player 1 wins!",
	}

	assert.Contains(t, m.View(), "Player 1 wins!")
}

func TestModel_WindowSize(t *testing.T) {
	t.Parallel()

	m := NewModel("ws://localhost:8090/ws")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	model, ok := updated.(*Model)
	require.True(t, ok)
	assert.Equal(t, 120, model.width)
	assert.Equal(t, 40, model.height)
}
