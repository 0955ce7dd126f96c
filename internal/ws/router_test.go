package ws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterDispatchesTypedHandler(t *testing.T) {
	r := NewRouter()

	var got string
	Register(r, "sendMessage",
		func(ctx context.Context, c *ConnContext, req SendMessageBody) (AckBody, error) {
			got = req.Text
			return AckBody{}, nil
		},
	)

	res, err := r.dispatch(context.Background(), &ConnContext{}, Envelope{
		Event: "sendMessage",
		Body:  json.RawMessage(`{"text":"hi"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, AckBody{}, res)
	assert.Equal(t, "hi", got)
}

func TestRouterRejectsUnknownEvent(t *testing.T) {
	r := NewRouter()
	_, err := r.dispatch(context.Background(), &ConnContext{}, Envelope{Event: "nope"})
	require.EqualError(t, err, "unknown_event")
}

func TestRouterValidatesPayload(t *testing.T) {
	r := NewRouter()
	called := false
	Register(r, "sendMessage",
		func(ctx context.Context, c *ConnContext, req SendMessageBody) (AckBody, error) {
			called = true
			return AckBody{}, nil
		},
	)

	// Empty text fails the required tag before the handler runs.
	_, err := r.dispatch(context.Background(), &ConnContext{}, Envelope{
		Event: "sendMessage",
		Body:  json.RawMessage(`{"text":""}`),
	})
	require.EqualError(t, err, "invalid_payload")
	assert.False(t, called)
}

func TestRouterRejectsMalformedBody(t *testing.T) {
	r := NewRouter()
	Register(r, "joinButton",
		func(ctx context.Context, c *ConnContext, req JoinButtonBody) (AckBody, error) {
			return AckBody{}, nil
		},
	)

	_, err := r.dispatch(context.Background(), &ConnContext{}, Envelope{
		Event: "joinButton",
		Body:  json.RawMessage(`{"buttonId":42}`),
	})
	require.Error(t, err)
}
