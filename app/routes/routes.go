package routes

import (
	"net/http"

	"blogadmin/app/admin"
	"blogadmin/app/controllers"
	"blogadmin/app/middleware"
	"blogadmin/app/repositories"
	"blogadmin/app/sessions"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRoutes wires the admin site under /admin and returns the
// router. Everything except login sits behind the staff-session
// check.
func SetupRoutes(db *gorm.DB, site *admin.Site, store *sessions.Store, log *logrus.Logger) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recoverer(log))

	ac := controllers.NewAdminController(db, site, store, log)
	users := repositories.NewGormUserRepository(db)

	// login is the only route outside the auth fence
	router.HandleFunc("/admin/login", ac.Login).Methods("POST")

	protected := router.PathPrefix("/admin").Subrouter()
	protected.Use(middleware.RequireStaff(store, users))

	protected.HandleFunc("/logout", ac.Logout).Methods("POST")
	protected.HandleFunc("", ac.Index).Methods("GET")
	protected.HandleFunc("/", ac.Index).Methods("GET")

	model := protected.PathPrefix("/{app:[a-z]+}/{model:[a-z]+}").Subrouter()
	model.HandleFunc("/", ac.Changelist).Methods("GET")
	model.HandleFunc("/add/", ac.Add).Methods("POST")
	model.HandleFunc("/autocomplete/", ac.Autocomplete).Methods("GET")
	model.HandleFunc("/action/", ac.Action).Methods("POST")
	model.HandleFunc("/{pk:[0-9]+}/change/", ac.Change).Methods("GET")
	model.HandleFunc("/{pk:[0-9]+}/change/", ac.Save).Methods("POST")
	model.HandleFunc("/{pk:[0-9]+}/delete/", ac.Delete).Methods("POST")

	return router
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
