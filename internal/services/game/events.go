package game

// Server-to-client event names. Together with the bodies defined in
// types.go these are the full push contract.
const (
	EventInitialState         = "initialState"
	EventOnlineUpdate         = "onlineUpdate"
	EventGameStateUpdate      = "gameStateUpdate"
	EventButtonClicked        = "buttonClicked"
	EventCorrectButtonClicked = "correctButtonClicked"
	EventWrongButton          = "wrongButton"
	EventNewMessage           = "newMessage"
	EventNewPrivateMessage    = "newPrivateMessage"
	EventButtonCreated        = "buttonCreated"
	EventButtonUpdated        = "buttonUpdated"
	EventButtonRemoved        = "buttonRemoved"
	EventUserJoined           = "userJoined"
	EventUserLeft             = "userLeft"
	EventChatHistory          = "chatHistory"
)

// Dispatcher delivers events to connected sessions. Delivery is
// fire-and-forget: a failed write only drops the dead connection.
type Dispatcher interface {
	BroadcastAll(event string, body any)
	BroadcastRoom(roomID, event string, body any)
	Unicast(userID, event string, body any)

	// Room subscription bookkeeping, driven by join/leave/destroy.
	JoinRoom(roomID, userID string)
	LeaveRoom(roomID, userID string)
	CloseRoom(roomID string)
}
