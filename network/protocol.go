package network

// Message ids for the packet protocol. 1xx is room membership, 2xx is
// player actions, 3xx is server-to-client notifications.
const (
	MsgTypeHeartbeat = 1

	MsgTypeJoinRoom  = 101
	MsgTypeLeaveRoom = 102

	MsgTypeRoll          = 201
	MsgTypeReset         = 202
	MsgTypeUseMitigation = 203
	MsgTypeAcceptMisstep = 204
	MsgTypeShareIntel    = 205

	MsgTypeRoomState = 301
	MsgTypeToast     = 302
	MsgTypeJoined    = 303
)
