package server

import (
	"encoding/json"
	"net/http"
	"net/rpc"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/BennettDISH/admiral-undersea/broadcast"
	"github.com/BennettDISH/admiral-undersea/catalog"
	"github.com/BennettDISH/admiral-undersea/config"
	"github.com/BennettDISH/admiral-undersea/game"
	"github.com/BennettDISH/admiral-undersea/logger"
	"github.com/BennettDISH/admiral-undersea/monitor"
	"github.com/BennettDISH/admiral-undersea/network"
	"github.com/BennettDISH/admiral-undersea/persistence"
	"github.com/BennettDISH/admiral-undersea/room"
	adminrpc "github.com/BennettDISH/admiral-undersea/rpc"
	"github.com/BennettDISH/admiral-undersea/services"
	"github.com/BennettDISH/admiral-undersea/session"
	"github.com/BennettDISH/admiral-undersea/state"
	"github.com/BennettDISH/admiral-undersea/timer"
)

// Lobby notifications emitted by the gateway itself; gameplay notifications
// come out of the engine.
type playerJoinedEvent struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

type playerLeftEvent struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

type teamUpdatedEvent struct {
	UserID   int64        `json:"userId"`
	Username string       `json:"username"`
	Team     catalog.Team `json:"team"`
}

type rolesUpdatedEvent struct {
	UserID   int64          `json:"userId"`
	Username string         `json:"username"`
	Roles    []catalog.Role `json:"roles"`
}

type GameServer struct {
	addr           string
	upgrader       websocket.Upgrader
	roomManager    *room.Manager
	sessionManager *session.Manager
	store          *game.Store
	engine         *game.Engine
	gameService    *services.GameService
	broadcaster    *broadcast.RoomBroadcaster
	timers         *timer.TimerManager
	monitor        *monitor.Monitor
	rpcServer      *adminrpc.Server
	shutdownChan   chan struct{}
}

func NewGameServer(cfg *config.Config, db persistence.Database, mon *monitor.Monitor) *GameServer {
	s := &GameServer{
		addr:           cfg.Server.HTTPAddress,
		roomManager:    room.NewRoomManager(),
		sessionManager: session.NewManager(),
		store:          game.NewStore(),
		gameService:    services.NewGameService(db),
		timers:         timer.NewTimerManager(),
		monitor:        mon,
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // same trust model as the rest of the game
			},
		},
	}

	s.broadcaster = broadcast.NewRoomBroadcaster(s.roomManager, s.sessionManager)

	automationDelay := time.Duration(cfg.Game.AutomationDelayMs) * time.Millisecond
	s.engine = game.NewEngine(s.store, s.broadcaster, s.timers, automationDelay)
	s.engine.SetGameOverHook(s.handleGameOver)
	if mon != nil {
		s.engine.SetMetrics(mon)
	}

	rpcServer, err := adminrpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer
	rpc.Register(adminrpc.NewAdminService(s.store, s.gameService))

	// Background sweeps: expire abandoned sessions, refresh the games gauge.
	sessionTTL := time.Duration(cfg.Game.SessionTTLMinutes) * time.Minute
	s.timers.AddTimer(time.Minute, time.Minute, func() {
		for _, code := range s.store.ExpireIdle(sessionTTL) {
			logger.Log.Infof("Expired idle game session %s", code)
			s.roomManager.RemoveRoom(code)
		}
		if s.monitor != nil {
			s.monitor.SetActiveGames(s.store.Count())
		}
	})

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()

	http.HandleFunc("/ws", s.handleWebSocket)
	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, nil)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.timers.Stop()
	s.rpcServer.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	if s.monitor != nil {
		s.monitor.IncOnlinePlayers()
	}

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.handleDisconnect(sess)
		s.sessionManager.Remove(sess.GetID())
		if s.monitor != nil {
			s.monitor.DecOnlinePlayers()
		}
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			s.handlePacket(sess, packet)
		}
	}
}

// handleDisconnect tells the room a crew member left. Informational only;
// nothing about the game state rolls back.
func (s *GameServer) handleDisconnect(sess *session.Session) {
	if sess.GameCode == "" {
		return
	}
	if r, exists := s.roomManager.GetRoom(sess.GameCode); exists {
		r.RemovePlayer(sess.GetID())
		s.publishToRoom(r.Code, network.MsgTypePlayerLeft, playerLeftEvent{
			UserID:   sess.UserID,
			Username: sess.Username,
		})
	}
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	start := time.Now()
	if s.monitor != nil {
		s.monitor.IncMessagesReceived()
		defer func() {
			s.monitor.ObserveMessageLatency(time.Since(start))
		}()
	}

	// All games share one event loop; a panic in one handler must not take
	// the process down.
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("Panic handling msg %d from session %s: %v", packet.MsgID, sess.GetID(), r)
		}
	}()

	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		sess.LastActive = time.Now()
	case network.MsgTypeJoinGame:
		s.handleJoinGame(sess, packet)
	case network.MsgTypeSelectTeam:
		s.handleSelectTeam(sess, packet)
	case network.MsgTypeSelectRoles:
		s.handleSelectRoles(sess, packet)
	default:
		s.handleGameAction(sess, packet)
	}
}

func (s *GameServer) handleJoinGame(sess *session.Session, packet *network.Packet) {
	var req network.JoinGameRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		return
	}
	if err := req.Validate(); err != nil {
		logger.Log.Warnf("Invalid join-game from %s: %v", sess.GetID(), err)
		return
	}

	code := strings.ToUpper(req.GameCode)
	sess.UserID = req.UserID
	sess.Username = req.Username

	r := s.roomManager.FindOrCreate(code, room.MaxCrew, s.broadcaster, func(rc state.RoomContext) state.State {
		return state.NewLobbyState(rc, s.engine, s.gameService)
	})
	if !r.AddPlayer(sess) {
		logger.Log.Warnf("Room %s is full, rejecting session %s", code, sess.GetID())
		return
	}

	// Restore the persisted team/role snapshot for reconnecting players.
	// Storage trouble is logged and ignored; memory stays authoritative.
	if assignment, err := s.gameService.Assignment(code, req.UserID); err == nil {
		sess.SetTeam(assignment.Team)
		sess.SetRoles(assignment.Roles)
	} else if err != services.ErrNoAssignment {
		logger.Log.Errorf("Failed to load assignment for user %d in %s: %v", req.UserID, code, err)
	}

	logger.Log.Infof("%s joined game %s", req.Username, code)
	s.publishToRoom(code, network.MsgTypePlayerJoined, playerJoinedEvent{
		UserID:   req.UserID,
		Username: req.Username,
	})

	// Catch the rejoining player up with their team's view of the board.
	if st, exists := s.store.Get(code); exists && sess.Team().Valid() {
		s.sendJSON(sess, network.MsgTypeGameState, game.ProjectForTeam(st, sess.Team()))
	}
}

func (s *GameServer) handleSelectTeam(sess *session.Session, packet *network.Packet) {
	var req network.SelectTeamRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		return
	}
	if err := req.Validate(); err != nil || sess.GameCode == "" {
		return
	}

	if err := s.gameService.SelectTeam(sess.GameCode, sess.UserID, req.Team); err != nil {
		logger.Log.Errorf("Failed to persist team selection for user %d: %v", sess.UserID, err)
	}
	sess.SetTeam(req.Team)

	s.publishToRoom(sess.GameCode, network.MsgTypeTeamUpdated, teamUpdatedEvent{
		UserID:   sess.UserID,
		Username: sess.Username,
		Team:     req.Team,
	})
}

func (s *GameServer) handleSelectRoles(sess *session.Session, packet *network.Packet) {
	var req network.SelectRolesRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		return
	}
	if err := req.Validate(); err != nil || sess.GameCode == "" {
		return
	}

	if err := s.gameService.SelectRoles(sess.GameCode, sess.UserID, req.Roles); err != nil {
		logger.Log.Errorf("Failed to persist role selection for user %d: %v", sess.UserID, err)
	}
	sess.SetRoles(req.Roles)

	s.publishToRoom(sess.GameCode, network.MsgTypeRolesUpdated, rolesUpdatedEvent{
		UserID:   sess.UserID,
		Username: sess.Username,
		Roles:    req.Roles,
	})
}

// handleGameAction routes everything else through the room's lifecycle
// state, which decides what the current phase accepts.
func (s *GameServer) handleGameAction(sess *session.Session, packet *network.Packet) {
	if sess.GameCode == "" {
		logger.Log.Warnf("Session %s sent msg %d but is not in a game", sess.GetID(), packet.MsgID)
		return
	}

	r, exists := s.roomManager.GetRoom(sess.GameCode)
	if !exists {
		logger.Log.Errorf("Room %s not found for session %s", sess.GameCode, sess.GetID())
		return
	}

	currentState := r.StateMachine.GetCurrentState()
	if currentState == nil {
		logger.Log.Errorf("Room %s has a nil state", r.Code)
		return
	}

	if err := currentState.HandleAction(sess, packet.MsgID, packet.Data); err != nil {
		// Invalid actions are dropped without a reply; this is a
		// cooperative game, not a security boundary.
		logger.Log.Infof("Rejected msg %d in room %s: %v", packet.MsgID, r.Code, err)
	}
}

// handleGameOver records the result and freezes the room. Runs off the
// engine's hook after the winning shot resolves.
func (s *GameServer) handleGameOver(code string, winner catalog.Team) {
	if r, exists := s.roomManager.GetRoom(code); exists {
		if err := r.ChangeState(state.NewFinishedState(r, winner)); err != nil {
			logger.Log.Errorf("Failed to finish room %s: %v", code, err)
		}
	}

	go func() {
		if err := s.gameService.RecordResult(code, winner); err != nil {
			logger.Log.Errorf("Failed to record result for %s: %v", code, err)
		}
	}()
}

func (s *GameServer) publishToRoom(code string, msgID uint16, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Errorf("Failed to marshal msg %d: %v", msgID, err)
		return
	}
	if err := s.broadcaster.BroadcastToRoom(code, msgID, data); err != nil {
		logger.Log.Warnf("Broadcast to room %s failed: %v", code, err)
	}
}

func (s *GameServer) sendJSON(sess *session.Session, msgID uint16, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Errorf("Failed to marshal msg %d: %v", msgID, err)
		return
	}
	if err := sess.Send(msgID, data); err != nil {
		logger.Log.Warnf("Send to session %s failed: %v", sess.GetID(), err)
	}
}
