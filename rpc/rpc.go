package rpc

import (
	"net"
	"net/rpc"

	"github.com/BennettDISH/admiral-undersea/game"
	"github.com/BennettDISH/admiral-undersea/logger"
	"github.com/BennettDISH/admiral-undersea/services"
)

// Server manages the RPC listener for the admin surface.
type Server struct {
	listener net.Listener
	address  string
}

func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// AdminService exposes read-only views of the live games over net/rpc.
// Methods follow the net/rpc signature rules: exported, pointer reply,
// error return.
type AdminService struct {
	store       *game.Store
	gameService *services.GameService
}

func NewAdminService(store *game.Store, gs *services.GameService) *AdminService {
	return &AdminService{store: store, gameService: gs}
}

type ListGamesArgs struct{}

type ListGamesReply struct {
	Codes []string
}

func (a *AdminService) ListActiveGames(args *ListGamesArgs, reply *ListGamesReply) error {
	reply.Codes = a.store.Codes()
	return nil
}

type GameSummaryArgs struct {
	Code string
}

type GameSummaryReply struct {
	Summary game.GameSummary
	Status  string
}

func (a *AdminService) GetGameSummary(args *GameSummaryArgs, reply *GameSummaryReply) error {
	st, exists := a.store.Get(args.Code)
	if !exists {
		return game.ErrUnknownGame
	}
	reply.Summary = st.Summary()

	if row, err := a.gameService.GetGame(args.Code); err == nil {
		reply.Status = row.Status
	}
	return nil
}
