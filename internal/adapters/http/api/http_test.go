package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/adapters/http/api"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/board"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/filter"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// mockService implements api.Dependencies with canned behavior.
type mockService struct {
	seen      map[string]bool
	moves     []model.MoveEvent
	moveErr   error
	rankEdits map[string]int
	tierN     int
	tierErr   error
	saveErr   error
	resets    int
	filter    filter.State
	visible   []model.Player
	revealed  []model.Player
	placement board.Placement
	rankErr   error
}

func newMockService() *mockService {
	return &mockService{
		seen:      map[string]bool{},
		rankEdits: map[string]int{},
	}
}

func (m *mockService) HandleMove(ctx context.Context, ev model.MoveEvent) (bool, error) {
	if m.moveErr != nil {
		return false, m.moveErr
	}
	if ev.EventID != "" && m.seen[ev.EventID] {
		return true, nil
	}
	m.seen[ev.EventID] = true
	m.moves = append(m.moves, ev)
	return false, nil
}

func (m *mockService) EditRank(ctx context.Context, playerID string, rank int) error {
	if m.rankErr != nil {
		return m.rankErr
	}
	m.rankEdits[playerID] = rank
	return nil
}

func (m *mockService) AddTier(ctx context.Context) (string, error) {
	if m.tierErr != nil {
		return "", m.tierErr
	}
	m.tierN++
	return fmt.Sprintf("tier-%d", m.tierN), nil
}

func (m *mockService) SaveNow(ctx context.Context) error  { return m.saveErr }
func (m *mockService) ResetAll(ctx context.Context) error { m.resets++; return nil }

func (m *mockService) SetNameFilter(ctx context.Context, query string) {
	m.filter.NameQuery = query
}

func (m *mockService) SetPositionFilter(ctx context.Context, pos string) error {
	if pos == "" {
		m.filter.Position = ""
		return nil
	}
	parsed, ok := model.ParsePosition(pos)
	if !ok {
		return fmt.Errorf("unknown position %q", pos)
	}
	m.filter.Position = parsed
	return nil
}

func (m *mockService) FilterState(ctx context.Context) filter.State { return m.filter }

func (m *mockService) RevealMore(ctx context.Context) []model.Player    { return m.revealed }
func (m *mockService) VisiblePlayers(ctx context.Context) []model.Player { return m.visible }

func (m *mockService) BoardView(ctx context.Context) []api.TierView {
	return []api.TierView{{Tier: board.UnassignedKey}}
}

func (m *mockService) RankOf(ctx context.Context, playerID string) (board.Placement, error) {
	if m.rankErr != nil {
		return board.Placement{}, m.rankErr
	}
	return m.placement, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} { return m.stats }

func newTestMux(svc *mockService) *http.ServeMux {
	server := api.NewServer(svc, &mockStatsProvider{stats: map[string]interface{}{"started": true}})
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		svc := newMockService()
		mux := newTestMux(svc)

		Convey("The health endpoint serves metrics", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("The stats endpoint returns JSON", func() {
			req := httptest.NewRequest("GET", "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "started")
		})

		Convey("The board endpoint returns tier views", func() {
			req := httptest.NewRequest("GET", "/board", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, board.UnassignedKey)
		})
	})
}

func TestMovesEndpoint(t *testing.T) {
	Convey("Given the moves endpoint", t, func() {
		svc := newMockService()
		mux := newTestMux(svc)

		post := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest("POST", "/moves", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			return w
		}

		Convey("A valid move is applied", func() {
			w := post(`{"event_id":"e1","player_id":"p1","from_tier":"unassigned","to_tier":"tier-1","to_index":0}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(len(svc.moves), ShouldEqual, 1)
			So(svc.moves[0].PlayerID, ShouldEqual, "p1")
		})

		Convey("A replayed event id is acknowledged as duplicate", func() {
			post(`{"event_id":"e1","player_id":"p1","to_tier":"tier-1"}`)
			w := post(`{"event_id":"e1","player_id":"p1","to_tier":"tier-1"}`)
			So(w.Code, ShouldEqual, http.StatusOK)

			var ack struct {
				Status    string `json:"status"`
				Duplicate bool   `json:"duplicate"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &ack), ShouldBeNil)
			So(ack.Duplicate, ShouldBeTrue)
			So(len(svc.moves), ShouldEqual, 1)
		})

		Convey("A missing player id is rejected", func() {
			w := post(`{"to_tier":"tier-1"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Malformed JSON is rejected", func() {
			w := post(`{not json`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("An unknown tier maps to 404", func() {
			svc.moveErr = board.ErrUnknownTier
			w := post(`{"player_id":"p1","to_tier":"tier-99"}`)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("GET is not routed", func() {
			req := httptest.NewRequest("GET", "/moves", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestRankEndpoint(t *testing.T) {
	Convey("Given the rank endpoint", t, func() {
		svc := newMockService()
		mux := newTestMux(svc)

		post := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest("POST", "/rank", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			return w
		}

		Convey("A numeric rank is applied", func() {
			w := post(`{"player_id":"p1","rank":3}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(svc.rankEdits["p1"], ShouldEqual, 3)
		})

		Convey("A numeric string rank is coerced", func() {
			w := post(`{"player_id":"p1","rank":" 7 "}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(svc.rankEdits["p1"], ShouldEqual, 7)
		})

		Convey("Garbage input falls back to rank 1", func() {
			w := post(`{"player_id":"p1","rank":"abc"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(svc.rankEdits["p1"], ShouldEqual, 1)
		})

		Convey("A missing rank field falls back to rank 1", func() {
			w := post(`{"player_id":"p1"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(svc.rankEdits["p1"], ShouldEqual, 1)
		})

		Convey("A missing player id is rejected", func() {
			w := post(`{"rank":3}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("A rank lookup returns the placement", func() {
			svc.placement = board.Placement{Tier: "tier-2", Rank: 4}
			req := httptest.NewRequest("GET", "/rank/p1", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "tier-2")
		})

		Convey("An unknown player maps to 404", func() {
			svc.rankErr = board.ErrUnknownPlayer
			req := httptest.NewRequest("GET", "/rank/nope", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestTiersEndpoint(t *testing.T) {
	Convey("Given the tiers endpoint", t, func() {
		svc := newMockService()
		mux := newTestMux(svc)

		Convey("A tier is created with the next key", func() {
			req := httptest.NewRequest("POST", "/tiers", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusCreated)
			So(w.Body.String(), ShouldContainSubstring, "tier-1")
		})

		Convey("A capped board maps to 409", func() {
			svc.tierErr = board.ErrTooManyTiers
			req := httptest.NewRequest("POST", "/tiers", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusConflict)
		})
	})
}

func TestPlayersAndFilters(t *testing.T) {
	Convey("Given players and filters endpoints", t, func() {
		svc := newMockService()
		svc.visible = []model.Player{{ID: "1", FirstName: "Patrick", LastName: "Mahomes", Position: model.QB}}
		svc.revealed = []model.Player{{ID: "2", FirstName: "Justin", LastName: "Jefferson", Position: model.WR}}
		mux := newTestMux(svc)

		Convey("GET /players lists the visible pool", func() {
			req := httptest.NewRequest("GET", "/players", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "Mahomes")
		})

		Convey("POST /players/reveal returns the new chunk", func() {
			req := httptest.NewRequest("POST", "/players/reveal", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "Jefferson")
		})

		Convey("POST /filters updates and echoes the state", func() {
			body := `{"query":"mah","position":"QB"}`
			req := httptest.NewRequest("POST", "/filters", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(svc.filter.NameQuery, ShouldEqual, "mah")
			So(svc.filter.Position, ShouldEqual, model.QB)
		})

		Convey("A partial filter update keeps the other field", func() {
			svc.filter = filter.State{NameQuery: "mah", Position: model.QB}
			req := httptest.NewRequest("POST", "/filters", strings.NewReader(`{"query":""}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(svc.filter.NameQuery, ShouldEqual, "")
			So(svc.filter.Position, ShouldEqual, model.QB)
		})

		Convey("An unknown position is rejected", func() {
			req := httptest.NewRequest("POST", "/filters", strings.NewReader(`{"position":"GOALIE"}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestControlEndpoints(t *testing.T) {
	Convey("Given save and reset endpoints", t, func() {
		svc := newMockService()
		mux := newTestMux(svc)

		Convey("POST /save acknowledges", func() {
			req := httptest.NewRequest("POST", "/save", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "saved")
		})

		Convey("A failed save maps to 500", func() {
			svc.saveErr = fmt.Errorf("disk full")
			req := httptest.NewRequest("POST", "/save", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})

		Convey("POST /reset rebuilds the board", func() {
			req := httptest.NewRequest("POST", "/reset", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(svc.resets, ShouldEqual, 1)
		})
	})
}
