package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage_WithPayload(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(MsgJoinSeat, JoinSeatPayload{Seat: 1})
	require.NoError(t, err)
	assert.Equal(t, MsgJoinSeat, msg.Type)
	assert.JSONEq(t, `{"seat":1}`, string(msg.Payload))
}

func TestNewMessage_NilPayload(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(MsgLeaveSeat, nil)
	require.NoError(t, err)
	assert.Equal(t, MsgLeaveSeat, msg.Type)
	assert.Nil(t, msg.Payload)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(MsgMakeChoice, MakeChoicePayload{Choice: "rock"})

	data, err := msg.Encode()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, msg.Type, decoded.Type)

	payload, err := ParsePayload[MakeChoicePayload](decoded)
	require.NoError(t, err)
	assert.Equal(t, "rock", payload.Choice)
}

func TestDecode_InvalidJSON(t *testing.T) {
	t.Parallel()

	msg, err := Decode([]byte("{not json"))
	assert.Error(t, err)
	assert.Nil(t, msg)
}

func TestParsePayload_Mismatch(t *testing.T) {
	t.Parallel()

	msg := &Message{Type: MsgJoinSeat, Payload: []byte(`{"seat":"zero"}`)}
	payload, err := ParsePayload[JoinSeatPayload](msg)
	assert.Error(t, err)
	assert.Nil(t, payload)
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessage(ErrCodeRateLimit)
	require.NotNil(t, msg)
	assert.Equal(t, MsgError, msg.Type)

	payload, err := ParsePayload[ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, ErrCodeRateLimit, payload.Code)
	assert.Equal(t, ErrorMessages[ErrCodeRateLimit], payload.Message)
}

func TestGameStatePayload_EmptySeatsSerializeAsNull(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(MsgGameState, GameStatePayload{Round: 3})
	assert.JSONEq(t, `{"seats":[null,null],"round":3}`, string(msg.Payload))
}
