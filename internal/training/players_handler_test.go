package training_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/athletiq/athlete-tracker/internal/training"
)

func TestPlayersHandler_HandleAdd(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockplayersRepo(ctrl)
	invalidatorMock := NewMockinsightsInvalidator(ctrl)
	h := training.NewPlayersHandler(repoMock, invalidatorMock)

	playerJson, err := json.Marshal(training.Player{Name: "  Mia Novak "})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "", bytes.NewReader(playerJson))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	repoMock.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, p training.Player) (*training.Player, error) {
			assert.Equal(t, "Mia Novak", p.Name)
			assert.False(t, p.CreatedAt.IsZero())
			p.ID = "player-1"
			return &p, nil
		}).Times(1)

	h.HandleAdd(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var added training.Player
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	assert.Equal(t, "player-1", added.ID)
	assert.Equal(t, "Mia Novak", added.Name)
}

func TestPlayersHandler_HandleAdd_InvalidName(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockplayersRepo(ctrl)
	invalidatorMock := NewMockinsightsInvalidator(ctrl)
	h := training.NewPlayersHandler(repoMock, invalidatorMock)

	playerJson, err := json.Marshal(training.Player{Name: "X"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "", bytes.NewReader(playerJson))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	h.HandleAdd(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlayersHandler_HandleList(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockplayersRepo(ctrl)
	invalidatorMock := NewMockinsightsInvalidator(ctrl)
	h := training.NewPlayersHandler(repoMock, invalidatorMock)

	now := time.Now()
	roster := make([]training.Player, 0, 20)
	for i := 0; i < 20; i++ {
		roster = append(roster, training.Player{
			ID:        uuid.NewString(),
			Name:      gofakeit.Name(),
			CreatedAt: now,
		})
	}
	repoMock.EXPECT().
		List(gomock.Any()).
		Return(roster, nil)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "", nil)
	require.NoError(t, err)

	h.HandleList(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var players []training.Player
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &players))
	require.Len(t, players, 20)
	assert.Equal(t, roster[0].Name, players[0].Name)
}

func TestPlayersHandler_HandleDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockplayersRepo(ctrl)
	invalidatorMock := NewMockinsightsInvalidator(ctrl)
	h := training.NewPlayersHandler(repoMock, invalidatorMock)

	repoMock.EXPECT().
		Delete(gomock.Any(), "p1").
		Return(nil)
	invalidatorMock.EXPECT().
		Invalidate(gomock.Any(), "p1").
		Return(nil)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("DELETE", "", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"id": "p1"})

	h.HandleDelete(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var deleteResp training.DeletePlayerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deleteResp))
	assert.Equal(t, "p1", deleteResp.DeletedID)
}

func TestPlayersHandler_HandleDelete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockplayersRepo(ctrl)
	invalidatorMock := NewMockinsightsInvalidator(ctrl)
	h := training.NewPlayersHandler(repoMock, invalidatorMock)

	repoMock.EXPECT().
		Delete(gomock.Any(), "nope").
		Return(training.ErrPlayerNotFound)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("DELETE", "", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"id": "nope"})

	h.HandleDelete(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
