package training_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/athletiq/athlete-tracker/internal/telemetry/metrics"
	"github.com/athletiq/athlete-tracker/internal/training"
)

func newSessionsHandlerForTest(t *testing.T) (*training.SessionsHandler, *MocksessionsRepo, *MockinsightsInvalidator, *metrics.Manager) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repoMock := NewMocksessionsRepo(ctrl)
	invalidatorMock := NewMockinsightsInvalidator(ctrl)
	metricsManager := metrics.NewTestManager()
	return training.NewSessionsHandler(repoMock, invalidatorMock, metricsManager), repoMock, invalidatorMock, metricsManager
}

func TestSessionsHandler_HandleAdd(t *testing.T) {
	h, repoMock, invalidatorMock, _ := newSessionsHandlerForTest(t)

	newSession := training.Session{
		PlayerID: "p1",
		Date:     "2026-08-29",
		RunTime:  "7:30",
		BroadJumps: training.BroadJumps{
			LeftSingle:  200,
			RightSingle: 210,
		},
		Sprints: [6]float64{30, 28, 0, 0, 0, 0},
	}
	sessionJson, err := json.Marshal(newSession)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "", bytes.NewReader(sessionJson))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	repoMock.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, s training.Session) (*training.Session, error) {
			assert.Equal(t, "p1", s.PlayerID)
			assert.Equal(t, "7:30", s.RunTime)
			assert.False(t, s.CreatedAt.IsZero())
			s.ID = "session-1"
			return &s, nil
		}).Times(1)
	invalidatorMock.EXPECT().
		Invalidate(gomock.Any(), "p1").
		Return(nil)

	h.HandleAdd(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var added training.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	assert.Equal(t, "session-1", added.ID)
	assert.Equal(t, "2026-08-29", added.Date)
}

func TestSessionsHandler_HandleAdd_ValidationErrors(t *testing.T) {
	h, _, _, _ := newSessionsHandlerForTest(t)

	// nothing recorded, run time malformed
	badSession := training.Session{
		PlayerID: "p1",
		Date:     "2026-08-29",
	}
	sessionJson, err := json.Marshal(badSession)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "", bytes.NewReader(sessionJson))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	h.HandleAdd(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp training.ValidationErrorsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "at least one metric must be recorded", resp.Errors["form"])
}

func TestSessionsHandler_HandleAdd_InvalidContentType(t *testing.T) {
	h, _, _, _ := newSessionsHandlerForTest(t)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "", bytes.NewReader([]byte("{}")))
	require.NoError(t, err)

	h.HandleAdd(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionsHandler_HandleList(t *testing.T) {
	h, repoMock, _, _ := newSessionsHandlerForTest(t)

	repoMock.EXPECT().
		List(gomock.Any(), training.SessionListParams{
			SessionParams: training.SessionParams{PlayerID: "p1"},
			Page:          2,
			Size:          10,
		}).
		Return([]training.Session{
			{ID: "s1", PlayerID: "p1", Date: "2026-08-20", RunTime: "7:30"},
		}, 11, nil)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "?player_id=p1", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"page": "2", "size": "10"})

	h.HandleList(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var listResp training.SessionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listResp))
	assert.Equal(t, 11, listResp.Total)
	require.Len(t, listResp.Sessions, 1)
	assert.Equal(t, "s1", listResp.Sessions[0].ID)
}

func TestSessionsHandler_HandleList_InvalidPage(t *testing.T) {
	h, _, _, _ := newSessionsHandlerForTest(t)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"page": "0", "size": "10"})

	h.HandleList(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionsHandler_HandleUpdate(t *testing.T) {
	h, repoMock, invalidatorMock, _ := newSessionsHandlerForTest(t)

	updated := training.Session{
		ID:      "s1",
		Date:    "2026-08-20",
		RunTime: "7:15",
	}
	sessionJson, err := json.Marshal(updated)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("PUT", "", bytes.NewReader(sessionJson))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	repoMock.EXPECT().
		Get(gomock.Any(), "s1").
		Return(&training.Session{ID: "s1", PlayerID: "p1"}, nil)
	repoMock.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, s *training.Session) error {
			assert.Equal(t, "p1", s.PlayerID)
			assert.Equal(t, "7:15", s.RunTime)
			return nil
		})
	invalidatorMock.EXPECT().
		Invalidate(gomock.Any(), "p1").
		Return(nil)

	h.HandleUpdate(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var updateResp training.UpdateSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updateResp))
	assert.Equal(t, "s1", updateResp.UpdatedID)
}

func TestSessionsHandler_HandleDelete(t *testing.T) {
	h, repoMock, invalidatorMock, _ := newSessionsHandlerForTest(t)

	repoMock.EXPECT().
		Get(gomock.Any(), "s1").
		Return(&training.Session{ID: "s1", PlayerID: "p1"}, nil)
	repoMock.EXPECT().
		Delete(gomock.Any(), "s1").
		Return(nil)
	invalidatorMock.EXPECT().
		Invalidate(gomock.Any(), "p1").
		Return(nil)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("DELETE", "", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"id": "s1"})

	h.HandleDelete(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var deleteResp training.DeleteSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deleteResp))
	assert.Equal(t, "s1", deleteResp.DeletedID)
}

func TestSessionsHandler_HandleDelete_NotFound(t *testing.T) {
	h, repoMock, _, _ := newSessionsHandlerForTest(t)

	repoMock.EXPECT().
		Get(gomock.Any(), "nope").
		Return(nil, training.ErrSessionNotFound)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("DELETE", "", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"id": "nope"})

	h.HandleDelete(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
