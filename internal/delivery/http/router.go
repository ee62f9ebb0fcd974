package http

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	httpSwagger "github.com/swaggo/http-swagger"

	"schooladmin/internal/delivery/http/controllers"
	"schooladmin/internal/delivery/http/helpers"
	"schooladmin/internal/delivery/http/middleware"
	"schooladmin/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Users      *controllers.UserController
	Students   *controllers.StudentController
	Lessons    *controllers.LessonController
	Activities *controllers.ActivityController
	Scores     *controllers.ScoreController
	Stream     *controllers.StreamController
}

// NewRouter initializes the HTTP router with all application routes. Stored
// files are served read-only from files under /files/. Directory listings
// and dot-files are not exposed.
func NewRouter(c Controllers, verifier domain.TokenVerifier, files http.FileSystem, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/login", c.Users.Login)
	mux.HandleFunc("POST /auth/password-reset", c.Users.RequestPasswordReset)
	mux.HandleFunc("POST /auth/password-reset/confirm", c.Users.ConfirmPasswordReset)

	// Users
	mux.HandleFunc("GET /users/me", auth(c.Users.GetMe))
	mux.HandleFunc("PATCH /users/me", auth(c.Users.UpdateMe))

	// Students
	mux.HandleFunc("GET /students", auth(c.Students.ListStudents))
	mux.HandleFunc("POST /students", auth(c.Students.CreateStudent))
	mux.HandleFunc("PUT /students/{id}", auth(c.Students.UpdateStudent))
	mux.HandleFunc("DELETE /students/{id}", auth(c.Students.DeleteStudent))

	// Lessons
	mux.HandleFunc("GET /lessons", auth(c.Lessons.ListLessons))
	mux.HandleFunc("POST /lessons", auth(c.Lessons.CreateLesson))
	mux.HandleFunc("PUT /lessons/{id}", auth(c.Lessons.UpdateLesson))
	mux.HandleFunc("DELETE /lessons/{id}", auth(c.Lessons.DeleteLesson))

	// Activities
	mux.HandleFunc("GET /activities", auth(c.Activities.ListActivities))
	mux.HandleFunc("POST /activities", auth(c.Activities.CreateActivity))
	mux.HandleFunc("GET /activities/{id}", auth(c.Activities.GetActivity))
	mux.HandleFunc("PUT /activities/{id}", auth(c.Activities.UpdateActivity))
	mux.HandleFunc("DELETE /activities/{id}", auth(c.Activities.DeleteActivity))

	// Scores
	mux.HandleFunc("GET /scores", auth(c.Scores.ListScores))
	mux.HandleFunc("POST /scores", auth(c.Scores.RecordScore))
	mux.HandleFunc("GET /scores/report", auth(c.Scores.ScoresReport))

	// Live list pages
	mux.HandleFunc("GET /stream/{collection}", middleware.RequireStreamAuth(verifier, logger)(c.Stream.Stream))

	// Stored files
	mux.Handle("GET /files/", http.StripPrefix("/files/", http.FileServer(publicFiles{files})))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, controllers.StatusResponse{Status: "ok"})
	})

	return mux
}

// publicFiles hides directories and dot-prefixed entries, such as in-flight
// upload temp files, from the file server.
type publicFiles struct {
	http.FileSystem
}

func (p publicFiles) Open(name string) (http.File, error) {
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") {
			return nil, fs.ErrNotExist
		}
	}
	f, err := p.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
