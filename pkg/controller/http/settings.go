package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/usecase"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/errutil"
)

type settingsResponse struct {
	Settings []*model.Setting `json:"settings"`
}

type putSettingRequest struct {
	Value string `json:"value"`
}

func (s *Server) handleListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.uc.Settings.List(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	if settings == nil {
		settings = []*model.Setting{}
	}
	writeJSON(w, r, http.StatusOK, settingsResponse{Settings: settings})
}

func (s *Server) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := s.uc.Settings.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, settingErrorStatus(err))
		return
	}
	writeJSON(w, r, http.StatusOK, setting)
}

func (s *Server) handlePutSetting(w http.ResponseWriter, r *http.Request) {
	var req putSettingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	setting, err := s.uc.Settings.Set(r.Context(), chi.URLParam(r, "key"), req.Value)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, settingErrorStatus(err))
		return
	}
	writeJSON(w, r, http.StatusOK, setting)
}

func settingErrorStatus(err error) int {
	switch {
	case errors.Is(err, usecase.ErrSettingNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidSetting):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
