package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/abdu61/TicTacToe/internal/api/response"
	"github.com/abdu61/TicTacToe/internal/bot"
	"github.com/abdu61/TicTacToe/internal/hub"
	"github.com/abdu61/TicTacToe/internal/match"
	"github.com/abdu61/TicTacToe/pkg/proto"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Extras  json.RawMessage `json:"extras"`
}

func newTestServer(t *testing.T) (*Server, *hub.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := hub.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	t.Cleanup(cancel)

	return NewServer(h, match.DefaultConfig(), &bot.BotMoveCalculator{}), h
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.Engine().ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	w, env := do(t, s, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"status":"ok","rooms":0}`, string(env.Extras))
}

func TestDifficulties(t *testing.T) {
	s, _ := newTestServer(t)

	w, env := do(t, s, http.MethodGet, "/api/v1/difficulties", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"difficulties":["easy","medium","hard"],"default":"medium"}`, string(env.Extras))
}

func TestSuggestMove(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantCode   int
		wantIndex  int
		wantReason string
	}{
		{
			name:       "medium takes the win",
			body:       `{"board":["O","O","","X","X","","","",""],"mark":"X","difficulty":"medium"}`,
			wantCode:   http.StatusOK,
			wantIndex:  5,
		},
		{
			name:       "hard answers a corner with the center",
			body:       `{"board":["X","","","","","","","",""],"mark":"O","difficulty":"hard"}`,
			wantCode:   http.StatusOK,
			wantIndex:  4,
		},
		{
			name:       "medium blocks",
			body:       `{"board":["X","X","","","O","","","",""],"mark":"O","difficulty":"medium"}`,
			wantCode:   http.StatusOK,
			wantIndex:  2,
		},
		{
			name:       "default difficulty wins at index zero",
			body:       `{"board":["","O","O","X","X","","","",""],"mark":"O"}`,
			wantCode:   http.StatusOK,
			wantIndex:  0,
		},
		{
			name:       "full board",
			body:       `{"board":["X","O","X","X","O","O","O","X","X"],"mark":"O","difficulty":"easy"}`,
			wantCode:   http.StatusUnprocessableEntity,
			wantReason: response.ReasonNoMoves,
		},
		{
			name:       "finished board",
			body:       `{"board":["X","X","X","O","O","","","",""],"mark":"O","difficulty":"easy"}`,
			wantCode:   http.StatusBadRequest,
			wantReason: response.ReasonGameFinished,
		},
		{
			name:       "short board",
			body:       `{"board":["X"],"mark":"O"}`,
			wantCode:   http.StatusBadRequest,
			wantReason: response.ReasonBadRequest,
		},
		{
			name:       "bad cell",
			body:       `{"board":["Z","","","","","","","",""],"mark":"O"}`,
			wantCode:   http.StatusBadRequest,
			wantReason: response.ReasonInvalidBoard,
		},
		{
			name:       "bad mark",
			body:       `{"board":["","","","","","","","",""],"mark":"Z"}`,
			wantCode:   http.StatusBadRequest,
			wantReason: response.ReasonBadRequest,
		},
		{
			name:       "unknown difficulty",
			body:       `{"board":["","","","","","","","",""],"mark":"X","difficulty":"impossible"}`,
			wantCode:   http.StatusBadRequest,
			wantReason: response.ReasonBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"board":`,
			wantCode:   http.StatusBadRequest,
			wantReason: response.ReasonBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t)

			w, env := do(t, s, http.MethodPost, "/api/v1/moves/suggest", tt.body)

			require.Equal(t, tt.wantCode, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCode, env.Code)
			if tt.wantCode != http.StatusOK {
				assert.False(t, env.Success)
				var failure response.Failure
				require.NoError(t, json.Unmarshal(env.Extras, &failure))
				assert.Equal(t, tt.wantReason, failure.Reason)
				assert.NotEmpty(t, failure.Message)
				return
			}
			var got suggestMoveResponse
			require.NoError(t, json.Unmarshal(env.Extras, &got))
			assert.Equal(t, tt.wantIndex, got.Index)
		})
	}
}

func TestWebSocket_RejectsBadConfig(t *testing.T) {
	for _, query := range []string{"rounds=0", "rounds=many", "difficulty=impossible", "opponent=robot"} {
		t.Run(query, func(t *testing.T) {
			s, _ := newTestServer(t)

			w, env := do(t, s, http.MethodGet, "/ws?"+query, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, string(env.Extras), "invalid config")
			assert.Contains(t, string(env.Extras), response.ReasonInvalidConfig)
		})
	}
}

func TestWebSocket_PlaysAgainstComputer(t *testing.T) {
	s, h := newTestServer(t)
	ts := httptest.NewServer(s.Engine())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?difficulty=hard&rounds=2"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	read := func() proto.ServerToClientMessage {
		t.Helper()
		var msg proto.ServerToClientMessage
		require.NoError(t, conn.ReadJSON(&msg))
		return msg
	}

	opening := read()
	assert.Equal(t, proto.TypeUpdate, opening.Type)
	assert.Equal(t, 2, opening.Rounds)
	assert.Equal(t, 1, h.RoomCount())

	index := 0
	require.NoError(t, conn.WriteJSON(proto.ClientToServerMessage{Type: proto.TypeMove, Index: &index}))

	afterHuman := read()
	assert.Equal(t, "X", afterHuman.Board[0])

	// The server's default delay is zero here, so the reply follows at once.
	afterComputer := read()
	assert.Equal(t, "O", afterComputer.Board[4])

	require.NoError(t, conn.WriteJSON(proto.ClientToServerMessage{Type: proto.TypeMove, Index: &index}))
	rejected := read()
	assert.Equal(t, proto.TypeError, rejected.Type)
}
