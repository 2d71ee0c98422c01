package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dosada05/padel-tournament/brackets"
	"github.com/Dosada05/padel-tournament/models"
	"github.com/Dosada05/padel-tournament/services"
	"github.com/Dosada05/padel-tournament/storage"
	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

type tournamentEnvelope struct {
	Tournament models.Tournament `json:"tournament"`
}

type tournamentListEnvelope struct {
	Tournaments []models.Tournament `json:"tournaments"`
}

type statsEnvelope struct {
	Stats []models.TeamStats `json:"stats"`
}

type groupStatsEnvelope struct {
	Groups map[string][]models.TeamStats `json:"groups"`
}

type matchesEnvelope struct {
	Matches []models.Match `json:"matches"`
}

type matchEnvelope struct {
	Match models.Match `json:"match"`
}

type archiveEnvelope struct {
	Archive storage.UploadResult `json:"archive"`
}

type tournamentPath struct {
	TournamentID string `path:"tournamentID"`
}

type groupPath struct {
	TournamentID string `path:"tournamentID"`
	GroupID      string `path:"groupID"`
}

type matchPath struct {
	TournamentID string `path:"tournamentID"`
	MatchID      string `path:"matchID"`
}

type startManualDoc struct {
	TournamentID string                 `path:"tournamentID"`
	Groups       []brackets.ManualGroup `json:"groups"`
}

type extraMatchDoc struct {
	TournamentID string       `path:"tournamentID"`
	Team1ID      string       `json:"team1_id"`
	Team2ID      string       `json:"team2_id"`
	Round        models.Round `json:"round"`
	GroupID      string       `json:"group_id,omitempty"`
}

type resultDoc struct {
	TournamentID string `path:"tournamentID"`
	MatchID      string `path:"matchID"`
	Team1Score   *int   `json:"team1_score"`
	Team2Score   *int   `json:"team2_score"`
}

type randomResultsDoc struct {
	TournamentID string       `path:"tournamentID"`
	Round        models.Round `json:"round,omitempty"`
}

type listQuery struct {
	Completed *bool `query:"completed"`
	Limit     int   `query:"limit"`
	Offset    int   `query:"offset"`
}

type operation struct {
	method, path, summary string
	request               interface{}
	responses             map[int]interface{}
	secured               bool
}

func tournamentOperations() []operation {
	errBody := ErrorResponse{}
	withErrors := func(ok int, body interface{}, codes ...int) map[int]interface{} {
		m := map[int]interface{}{ok: body}
		for _, c := range codes {
			m[c] = errBody
		}
		return m
	}

	return []operation{
		{method: http.MethodGet, path: "/healthz", summary: "Dependency health",
			responses: map[int]interface{}{http.StatusOK: map[string]CheckResult{}, http.StatusServiceUnavailable: map[string]CheckResult{}}},
		{method: http.MethodPost, path: "/auth/login", summary: "Organizer login", request: services.LoginInput{},
			responses: withErrors(http.StatusOK, LoginResponse{}, http.StatusUnauthorized, http.StatusUnprocessableEntity)},
		{method: http.MethodGet, path: "/tournaments", summary: "List tournaments", request: listQuery{},
			responses: withErrors(http.StatusOK, tournamentListEnvelope{}, http.StatusBadRequest)},
		{method: http.MethodGet, path: "/tournaments/{tournamentID}", summary: "Get a tournament", request: tournamentPath{},
			responses: withErrors(http.StatusOK, tournamentEnvelope{}, http.StatusNotFound)},
		{method: http.MethodGet, path: "/tournaments/{tournamentID}/stats", summary: "Tournament-wide standings", request: tournamentPath{},
			responses: withErrors(http.StatusOK, statsEnvelope{}, http.StatusNotFound)},
		{method: http.MethodGet, path: "/tournaments/{tournamentID}/groups/stats", summary: "Standings per group", request: tournamentPath{},
			responses: withErrors(http.StatusOK, groupStatsEnvelope{}, http.StatusNotFound)},
		{method: http.MethodGet, path: "/tournaments/{tournamentID}/groups/{groupID}/matches", summary: "Matches shown for a group", request: groupPath{},
			responses: withErrors(http.StatusOK, matchesEnvelope{}, http.StatusNotFound)},
		{method: http.MethodGet, path: "/tournaments/{tournamentID}/next-round", summary: "Next round eligibility", request: tournamentPath{},
			responses: withErrors(http.StatusOK, services.NextRoundStatus{}, http.StatusNotFound)},
		{method: http.MethodPost, path: "/tournaments", summary: "Create a tournament", request: services.CreateTournamentInput{}, secured: true,
			responses: withErrors(http.StatusCreated, tournamentEnvelope{}, http.StatusUnprocessableEntity)},
		{method: http.MethodDelete, path: "/tournaments/{tournamentID}", summary: "Delete a tournament", request: tournamentPath{}, secured: true,
			responses: withErrors(http.StatusNoContent, nil, http.StatusNotFound)},
		{method: http.MethodPost, path: "/tournaments/{tournamentID}/start", summary: "Start with a random draw", request: tournamentPath{}, secured: true,
			responses: withErrors(http.StatusOK, tournamentEnvelope{}, http.StatusNotFound, http.StatusConflict)},
		{method: http.MethodPost, path: "/tournaments/{tournamentID}/start/manual", summary: "Start with organizer groups", request: startManualDoc{}, secured: true,
			responses: withErrors(http.StatusOK, tournamentEnvelope{}, http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity)},
		{method: http.MethodPost, path: "/tournaments/{tournamentID}/matches", summary: "Add an extra match", request: extraMatchDoc{}, secured: true,
			responses: withErrors(http.StatusCreated, matchEnvelope{}, http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity)},
		{method: http.MethodPut, path: "/tournaments/{tournamentID}/matches/{matchID}/result", summary: "Record a match result", request: resultDoc{}, secured: true,
			responses: withErrors(http.StatusOK, tournamentEnvelope{}, http.StatusNotFound, http.StatusUnprocessableEntity)},
		{method: http.MethodDelete, path: "/tournaments/{tournamentID}/matches/{matchID}", summary: "Delete a match", request: matchPath{}, secured: true,
			responses: withErrors(http.StatusOK, tournamentEnvelope{}, http.StatusNotFound)},
		{method: http.MethodPost, path: "/tournaments/{tournamentID}/next-round", summary: "Generate the next knockout round", request: tournamentPath{}, secured: true,
			responses: withErrors(http.StatusOK, tournamentEnvelope{}, http.StatusNotFound, http.StatusConflict)},
		{method: http.MethodPost, path: "/tournaments/{tournamentID}/random-results", summary: "Fill open matches with random scores", request: randomResultsDoc{}, secured: true,
			responses: withErrors(http.StatusOK, tournamentEnvelope{}, http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity)},
		{method: http.MethodPost, path: "/tournaments/{tournamentID}/archive", summary: "Upload a snapshot to object storage", request: tournamentPath{}, secured: true,
			responses: withErrors(http.StatusOK, archiveEnvelope{}, http.StatusNotFound, http.StatusConflict)},
	}
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Padel Tournament API"
	r.Spec.Info.Version = "1.0.0"
	r.Spec.Info.WithDescription("Group stage and knockout management for padel doubles tournaments.")

	for _, op := range tournamentOperations() {
		oc, err := r.NewOperationContext(op.method, op.path)
		if err != nil {
			continue
		}
		oc.SetSummary(op.summary)
		if op.secured {
			oc.SetDescription("Requires an organizer bearer token.")
		}
		if op.request != nil {
			oc.AddReqStructure(op.request)
		}
		for status, body := range op.responses {
			oc.AddRespStructure(body, openapi.WithHTTPStatus(status))
		}
		_ = r.AddOperation(oc)
	}

	// The websocket subscription has no JSON body.
	ws, _ := r.NewOperationContext(http.MethodGet, "/ws/tournaments/{tournamentID}")
	ws.SetSummary("Subscribe to tournament events")
	ws.AddReqStructure(tournamentPath{})
	ws.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols), openapi.WithContentType("text/plain"))
	ws.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(ws)

	return r.Spec
}

// OpenAPIHandler serves the generated API document.
func OpenAPIHandler() http.HandlerFunc {
	data, _ := json.MarshalIndent(newOpenAPISpec(), "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
