package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"blogadmin/app/admin"
	"blogadmin/app/middleware"
	"blogadmin/app/repositories"
	"blogadmin/app/sessions"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AdminController serves the headless admin: JSON payloads shaped by
// the admin configuration, rendered by whatever client sits in front.
type AdminController struct {
	db       *gorm.DB
	site     *admin.Site
	sessions *sessions.Store
	users    repositories.UserRepository
	log      *logrus.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(db *gorm.DB, site *admin.Site, store *sessions.Store, log *logrus.Logger) *AdminController {
	return &AdminController{
		db:       db,
		site:     site,
		sessions: store,
		users:    repositories.NewGormUserRepository(db),
		log:      log,
	}
}

func (ac *AdminController) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ac.log.WithError(err).Error("encoding response")
	}
}

func (ac *AdminController) writeError(w http.ResponseWriter, status int, msg string) {
	ac.writeJSON(w, status, map[string]string{"error": msg})
}

// entry resolves {app}/{model} route vars to a registered admin.
func (ac *AdminController) entry(w http.ResponseWriter, r *http.Request) (admin.Entry, bool) {
	vars := mux.Vars(r)
	e, ok := ac.site.Get(vars["app"], vars["model"])
	if !ok {
		ac.writeError(w, http.StatusNotFound, fmt.Sprintf("no admin for %s/%s", vars["app"], vars["model"]))
		return nil, false
	}
	return e, true
}

func pkVar(r *http.Request) uint {
	pk, _ := strconv.ParseUint(mux.Vars(r)["pk"], 10, 64)
	return uint(pk)
}

// Index lists the registered admins.
func (ac *AdminController) Index(w http.ResponseWriter, r *http.Request) {
	metas := make([]admin.Meta, 0)
	for _, e := range ac.site.Entries() {
		metas = append(metas, e.Meta())
	}
	ac.writeJSON(w, http.StatusOK, map[string]any{
		"header": ac.site.Header,
		"models": metas,
	})
}

// Changelist serves the filtered, ordered list view.
func (ac *AdminController) Changelist(w http.ResponseWriter, r *http.Request) {
	e, ok := ac.entry(w, r)
	if !ok {
		return
	}
	page, err := e.Changelist(ac.db, r.URL.Query())
	if err != nil {
		ac.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ac.writeJSON(w, http.StatusOK, page)
}

// Change serves the edit view for one object.
func (ac *AdminController) Change(w http.ResponseWriter, r *http.Request) {
	e, ok := ac.entry(w, r)
	if !ok {
		return
	}
	view, err := e.Change(ac.db, pkVar(r))
	if err != nil {
		if errors.Is(err, admin.ErrNotFound) {
			ac.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		ac.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	ac.writeJSON(w, http.StatusOK, view)
}

// Save persists a change-view submission.
func (ac *AdminController) Save(w http.ResponseWriter, r *http.Request) {
	ac.save(w, r, pkVar(r))
}

// Add persists a new object.
func (ac *AdminController) Add(w http.ResponseWriter, r *http.Request) {
	ac.save(w, r, 0)
}

func (ac *AdminController) save(w http.ResponseWriter, r *http.Request, pk uint) {
	e, ok := ac.entry(w, r)
	if !ok {
		return
	}
	actor := middleware.CurrentUser(r)
	savedPK, fieldErrs, err := e.Save(ac.db, pk, r.Body, actor)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrNotFound):
			ac.writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, admin.ErrBadInput):
			ac.writeError(w, http.StatusBadRequest, err.Error())
		default:
			ac.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	if len(fieldErrs) > 0 {
		ac.writeJSON(w, http.StatusBadRequest, map[string]any{"errors": fieldErrs})
		return
	}
	status := http.StatusOK
	if pk == 0 {
		status = http.StatusCreated
	}
	ac.writeJSON(w, status, map[string]any{"pk": savedPK})
}

// Delete removes one object.
func (ac *AdminController) Delete(w http.ResponseWriter, r *http.Request) {
	e, ok := ac.entry(w, r)
	if !ok {
		return
	}
	if err := e.Delete(ac.db, pkVar(r)); err != nil {
		if errors.Is(err, admin.ErrNotFound) {
			ac.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		ac.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	ac.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type actionRequest struct {
	Action string `json:"action"`
	PKs    []uint `json:"pks"`
}

// Action runs a bulk action over selected rows. Actions that produce
// a document come back as a download.
func (ac *AdminController) Action(w http.ResponseWriter, r *http.Request) {
	e, ok := ac.entry(w, r)
	if !ok {
		return
	}
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ac.writeError(w, http.StatusBadRequest, "malformed action request")
		return
	}
	res, err := e.RunAction(ac.db, req.Action, req.PKs)
	if err != nil {
		ac.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if res.Body != nil {
		w.Header().Set("Content-Type", res.ContentType)
		if res.Filename != "" {
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
		}
		w.WriteHeader(http.StatusOK)
		w.Write(res.Body)
		return
	}
	ac.writeJSON(w, http.StatusOK, map[string]any{"updated": res.Updated})
}

// Autocomplete serves suggestions for the popup-search widgets.
func (ac *AdminController) Autocomplete(w http.ResponseWriter, r *http.Request) {
	e, ok := ac.entry(w, r)
	if !ok {
		return
	}
	if !e.HasSearch() {
		ac.writeError(w, http.StatusNotFound, "model has no search endpoint")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	options, err := e.Autocomplete(ac.db, r.URL.Query().Get("term"), limit)
	if err != nil {
		ac.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	ac.writeJSON(w, http.StatusOK, map[string]any{"results": options})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates an active staff user and issues a session.
func (ac *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ac.writeError(w, http.StatusBadRequest, "malformed login request")
		return
	}
	user, err := ac.users.GetByUsername(req.Username)
	if err != nil || !user.CheckPassword(req.Password) {
		ac.writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if !user.IsActive || !user.IsStaff {
		ac.writeError(w, http.StatusForbidden, "account is not allowed to log in")
		return
	}
	token, err := ac.sessions.Create(user.ID)
	if err != nil {
		ac.writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}
	now := time.Now().UTC()
	user.LastLogin = &now
	if err := ac.users.Update(user); err != nil {
		ac.log.WithError(err).Warn("recording last_login")
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	ac.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Logout revokes the current session.
func (ac *AdminController) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(middleware.SessionCookie); err == nil {
		if err := ac.sessions.Delete(c.Value); err != nil {
			ac.log.WithError(err).Warn("revoking session")
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:   middleware.SessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	ac.writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
