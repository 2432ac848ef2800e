package contact

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"StellarStore/pkg/kit"
)

const serverErrMsg = "Something went wrong on the server, please try again later."

type Server struct {
	Log       *zap.Logger
	Feedback  *AppendLog
	Customers *AppendLog
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/comments", s.handleComments)
	r.Post("/customer", s.handleCustomer)

	return r
}

func (s *Server) CommentsHandler() http.HandlerFunc { return s.handleComments }
func (s *Server) CustomerHandler() http.HandlerFunc { return s.handleCustomer }

func (s *Server) handleComments(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	comments := strings.TrimSpace(r.FormValue("comments"))

	if name == "" || comments == "" {
		kit.WriteError(w, r, http.StatusBadRequest,
			"missing POST parameter: name or comments", nil)
		return
	}

	entry := Feedback{
		ID:         "f_" + uuid.NewString(),
		Name:       name,
		Comments:   comments,
		ReceivedAt: time.Now().UTC(),
	}

	if err := s.Feedback.Append(r.Context(), entry); err != nil {
		if s.Log != nil {
			s.Log.Error("append feedback failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, serverErrMsg, nil)
		return
	}

	kit.WriteText(w, http.StatusOK, "Comment received!")
}

func (s *Server) handleCustomer(w http.ResponseWriter, r *http.Request) {
	firstname := strings.TrimSpace(r.FormValue("firstname"))
	lastname := strings.TrimSpace(r.FormValue("lastname"))
	email := strings.TrimSpace(r.FormValue("email"))
	phone := strings.TrimSpace(r.FormValue("phone"))

	if firstname == "" || lastname == "" || email == "" || phone == "" {
		kit.WriteError(w, r, http.StatusBadRequest,
			"missing POST parameter: first name, last name, email, or phone", nil)
		return
	}

	entry := Customer{
		ID:         "c_" + uuid.NewString(),
		FirstName:  firstname,
		LastName:   lastname,
		Email:      email,
		Phone:      phone,
		ReceivedAt: time.Now().UTC(),
	}

	if err := s.Customers.Append(r.Context(), entry); err != nil {
		if s.Log != nil {
			s.Log.Error("append customer failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, serverErrMsg, nil)
		return
	}

	kit.WriteText(w, http.StatusOK, "New Customer Received!")
}
