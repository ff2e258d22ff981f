// Package httpapi exposes the session manager over JSON/HTTP. It is
// presentation glue only: every rule decision belongs to the game and
// session packages, this layer just parses requests and shapes responses.
package httpapi

import (
	"encoding/json"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/cardtable/kings-corner/internal/invite"
	"github.com/cardtable/kings-corner/internal/session"
)

type Server struct {
	sessions *session.Manager
	invites  *invite.Directory
	logger   *zap.Logger
}

// NewServer wires the gateway. invites may be nil when no Redis is
// configured; invite endpoints then report the feature as unavailable.
func NewServer(sessions *session.Manager, invites *invite.Directory, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{sessions: sessions, invites: invites, logger: logger}
}

// Handler is the fasthttp entry point.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	switch {
	case path == "/api/games" && method == fasthttp.MethodPost:
		s.handleCreateGame(ctx)
	case path == "/api/games" && method == fasthttp.MethodGet:
		s.handleListGames(ctx)
	case strings.HasPrefix(path, "/api/games/"):
		s.routeGame(ctx, strings.TrimPrefix(path, "/api/games/"), method)
	case strings.HasPrefix(path, "/api/invites/") && method == fasthttp.MethodPost:
		s.routeInvite(ctx, strings.TrimPrefix(path, "/api/invites/"))
	case strings.HasPrefix(path, "/api/actions/") && method == fasthttp.MethodPost:
		s.routeAction(ctx, strings.TrimPrefix(path, "/api/actions/"))
	default:
		respondError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (s *Server) routeGame(ctx *fasthttp.RequestCtx, rest, method string) {
	id, tail, _ := strings.Cut(rest, "/")
	if id == "" {
		respondError(ctx, fasthttp.StatusNotFound, "not found")
		return
	}
	switch {
	case tail == "" && method == fasthttp.MethodGet:
		s.handleGameState(ctx, id)
	case tail == "join" && method == fasthttp.MethodPost:
		s.handleJoinGame(ctx, id)
	case tail == "start" && method == fasthttp.MethodPost:
		s.handleStartGame(ctx, id)
	default:
		respondError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (s *Server) routeInvite(ctx *fasthttp.RequestCtx, rest string) {
	code, tail, _ := strings.Cut(rest, "/")
	if code == "" || tail != "join" {
		respondError(ctx, fasthttp.StatusNotFound, "not found")
		return
	}
	s.handleInviteJoin(ctx, code)
}

func (s *Server) routeAction(ctx *fasthttp.RequestCtx, action string) {
	switch action {
	case "play":
		s.handlePlay(ctx)
	case "move":
		s.handleMove(ctx)
	case "draw":
		s.handleDraw(ctx)
	case "end-turn":
		s.handleEndTurn(ctx)
	default:
		respondError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

type createGameRequest struct {
	Name string `json:"name"`
}

type createGameResponse struct {
	GameID     string `json:"game_id"`
	PlayerID   string `json:"player_id"`
	InviteCode string `json:"invite_code,omitempty"`
}

func (s *Server) handleCreateGame(ctx *fasthttp.RequestCtx) {
	var req createGameRequest
	if !decodeBody(ctx, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(ctx, fasthttp.StatusBadRequest, "name is required")
		return
	}

	gameID, playerID, err := s.sessions.CreateGame(ctx, req.Name)
	if err != nil {
		respondError(ctx, fasthttp.StatusServiceUnavailable, err.Error())
		return
	}

	resp := createGameResponse{GameID: gameID, PlayerID: playerID}
	if s.invites != nil {
		code, err := s.invites.Make(ctx, gameID)
		if err != nil {
			s.logger.Warn("invite_code_failed", zap.String("gameId", gameID), zap.Error(err))
		} else {
			resp.InviteCode = code
		}
	}
	respondJSON(ctx, fasthttp.StatusCreated, resp)
}

type joinRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleJoinGame(ctx *fasthttp.RequestCtx, gameID string) {
	var req joinRequest
	if !decodeBody(ctx, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(ctx, fasthttp.StatusBadRequest, "name is required")
		return
	}

	playerID, ok := s.sessions.JoinGame(ctx, gameID, req.Name)
	if !ok {
		respondError(ctx, fasthttp.StatusNotFound, "cannot join game")
		return
	}
	respondJSON(ctx, fasthttp.StatusOK, map[string]string{"player_id": playerID})
}

func (s *Server) handleInviteJoin(ctx *fasthttp.RequestCtx, code string) {
	if s.invites == nil {
		respondError(ctx, fasthttp.StatusNotImplemented, "invite codes are not enabled")
		return
	}
	var req joinRequest
	if !decodeBody(ctx, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(ctx, fasthttp.StatusBadRequest, "name is required")
		return
	}

	gameID, found, err := s.invites.Resolve(ctx, code)
	if err != nil {
		respondError(ctx, fasthttp.StatusServiceUnavailable, "invite lookup failed")
		return
	}
	if !found {
		respondError(ctx, fasthttp.StatusNotFound, "unknown invite code")
		return
	}
	playerID, ok := s.sessions.JoinGame(ctx, gameID, req.Name)
	if !ok {
		respondError(ctx, fasthttp.StatusNotFound, "cannot join game")
		return
	}
	respondJSON(ctx, fasthttp.StatusOK, map[string]string{"game_id": gameID, "player_id": playerID})
}

type startRequest struct {
	PlayerID string `json:"player_id"`
}

func (s *Server) handleStartGame(ctx *fasthttp.RequestCtx, gameID string) {
	var req startRequest
	if !decodeBody(ctx, &req) {
		return
	}
	ok := s.sessions.StartGame(ctx, gameID, req.PlayerID)
	if !ok {
		respondError(ctx, fasthttp.StatusConflict, "cannot start game")
		return
	}
	respondJSON(ctx, fasthttp.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleGameState(ctx *fasthttp.RequestCtx, gameID string) {
	snap, ok := s.sessions.GameState(gameID)
	if !ok {
		respondError(ctx, fasthttp.StatusNotFound, "game not found")
		return
	}
	respondJSON(ctx, fasthttp.StatusOK, snap)
}

func (s *Server) handleListGames(ctx *fasthttp.RequestCtx) {
	respondJSON(ctx, fasthttp.StatusOK, s.sessions.ListGames())
}

type playRequest struct {
	PlayerID string `json:"player_id"`
	Rank     string `json:"rank"`
	Suit     string `json:"suit"`
	Pile     string `json:"pile"`
}

func (s *Server) handlePlay(ctx *fasthttp.RequestCtx) {
	var req playRequest
	if !decodeBody(ctx, &req) {
		return
	}
	ok, msg := s.sessions.PlayCard(ctx, req.PlayerID, req.Rank, req.Suit, req.Pile)
	respondAction(ctx, ok, msg)
}

type moveRequest struct {
	PlayerID string `json:"player_id"`
	From     string `json:"from"`
	To       string `json:"to"`
}

func (s *Server) handleMove(ctx *fasthttp.RequestCtx) {
	var req moveRequest
	if !decodeBody(ctx, &req) {
		return
	}
	ok, msg := s.sessions.MovePile(ctx, req.PlayerID, req.From, req.To)
	respondAction(ctx, ok, msg)
}

type drawRequest struct {
	PlayerID string `json:"player_id"`
}

func (s *Server) handleDraw(ctx *fasthttp.RequestCtx) {
	var req drawRequest
	if !decodeBody(ctx, &req) {
		return
	}
	ok, msg := s.sessions.DrawCard(ctx, req.PlayerID)
	respondAction(ctx, ok, msg)
}

func (s *Server) handleEndTurn(ctx *fasthttp.RequestCtx) {
	var req drawRequest
	if !decodeBody(ctx, &req) {
		return
	}
	ok := s.sessions.EndTurn(ctx, req.PlayerID)
	if !ok {
		respondError(ctx, fasthttp.StatusConflict, "cannot end turn")
		return
	}
	respondJSON(ctx, fasthttp.StatusOK, map[string]bool{"ok": true})
}

type actionResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// respondAction keeps rejected actions at 200: the request was understood,
// the game simply said no, and the message explains why.
func respondAction(ctx *fasthttp.RequestCtx, ok bool, msg string) {
	respondJSON(ctx, fasthttp.StatusOK, actionResponse{OK: ok, Message: msg})
}

func decodeBody(ctx *fasthttp.RequestCtx, out any) bool {
	if err := json.Unmarshal(ctx.PostBody(), out); err != nil {
		respondError(ctx, fasthttp.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func respondJSON(ctx *fasthttp.RequestCtx, status int, data any) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	payload, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"error":"encode failed"}`)
		return
	}
	ctx.SetBody(payload)
}

func respondError(ctx *fasthttp.RequestCtx, status int, message string) {
	respondJSON(ctx, status, map[string]string{"error": message})
}
