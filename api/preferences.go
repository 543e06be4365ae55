package api

import (
	"encoding/json"
	"net/http"

	"github.com/gojkop/mindpick/pkg/repository"
	"github.com/gorilla/mux"
)

type PreferencesHandler struct {
	repo repository.PreferencesRepo
}

func NewPreferencesHandler(repo repository.PreferencesRepo) *PreferencesHandler {
	return &PreferencesHandler{repo: repo}
}

type putPreferenceRequest struct {
	Value string `json:"value"`
}

func (h *PreferencesHandler) List(w http.ResponseWriter, r *http.Request) {
	expertID, ok := expertIDFrom(r)
	if !ok {
		http.Error(w, "expert scope required", http.StatusBadRequest)
		return
	}

	prefs, err := h.repo.ListPreferences(r.Context(), expertID)
	if err != nil {
		http.Error(w, "failed to list preferences", http.StatusInternalServerError)
		return
	}
	// map form: the frontend reads this like its old local store
	out := make(map[string]string, len(prefs))
	for _, p := range prefs {
		out[p.Key] = p.Value
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	expertID, ok := expertIDFrom(r)
	if !ok {
		http.Error(w, "expert scope required", http.StatusBadRequest)
		return
	}
	key := mux.Vars(r)["key"]

	p, err := h.repo.GetPreference(r.Context(), expertID, key)
	if err != nil {
		http.Error(w, "failed to load preference", http.StatusInternalServerError)
		return
	}
	if p == nil {
		http.Error(w, "preference not found", http.StatusNotFound)
		return
	}
	writeJSON(w, p, http.StatusOK)
}

func (h *PreferencesHandler) Put(w http.ResponseWriter, r *http.Request) {
	expertID, ok := expertIDFrom(r)
	if !ok {
		http.Error(w, "expert scope required", http.StatusBadRequest)
		return
	}
	key := mux.Vars(r)["key"]
	if key == "" {
		http.Error(w, "key is required", http.StatusBadRequest)
		return
	}

	var req putPreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if len(req.Value) > 64*1024 {
		http.Error(w, "value too large", http.StatusBadRequest)
		return
	}

	if err := h.repo.SetPreference(r.Context(), expertID, key, req.Value); err != nil {
		http.Error(w, "failed to store preference", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PreferencesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	expertID, ok := expertIDFrom(r)
	if !ok {
		http.Error(w, "expert scope required", http.StatusBadRequest)
		return
	}
	key := mux.Vars(r)["key"]

	if err := h.repo.DeletePreference(r.Context(), expertID, key); err != nil {
		http.Error(w, "failed to delete preference", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
