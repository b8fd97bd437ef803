package network

// Inbound intents.
const (
	MsgTypeHeartbeat         = 1
	MsgTypeJoinGame          = 101
	MsgTypeSelectTeam        = 102
	MsgTypeSelectRoles       = 103
	MsgTypeStartGame         = 104
	MsgTypeCaptainMove       = 201
	MsgTypeAyeCaptain        = 202
	MsgTypeChargeSystem      = 203
	MsgTypeMarkDamage        = 204
	MsgTypeFireTorpedo       = 205
	MsgTypeSetAutomatedRoles = 206
	MsgTypeSetSystemPriority = 207
)

// Outbound notifications.
const (
	MsgTypePlayerJoined          = 301
	MsgTypePlayerLeft            = 302
	MsgTypeTeamUpdated           = 303
	MsgTypeRolesUpdated          = 304
	MsgTypeGameStarted           = 305
	MsgTypeGameState             = 306
	MsgTypeMoveAnnounced         = 401
	MsgTypePlayMoveSound         = 402
	MsgTypeSystemCharged         = 403
	MsgTypeDamageMarked          = 404
	MsgTypeRoleConfirmed         = 405
	MsgTypeTurnComplete          = 406
	MsgTypeTorpedoHit            = 407
	MsgTypeTorpedoMiss           = 408
	MsgTypeGameOver              = 409
	MsgTypeAutomatedRolesUpdated = 410
	MsgTypeAutomationAction      = 411
)
