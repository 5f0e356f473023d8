package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/bulletins/pkg/buildinfo"
	"github.com/matzehuels/bulletins/pkg/document"
)

var kinds = document.Kinds

type createRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Content     *document.Content `json:"content,omitempty"`
}

type publishRequest struct {
	Comment string           `json:"comment,omitempty"`
	Content document.Content `json:"content"`
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) version(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) documentRoutes(kind document.Kind) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", s.listDocuments(kind))
		r.Post("/", s.createDocument(kind))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getDocument(kind))
			r.Post("/archive", s.archiveDocument(kind))
			r.Get("/export", s.exportDocument(kind))
			r.Get("/versions", s.listVersions(kind))
			r.Post("/versions", s.publishVersion(kind))
			r.Get("/versions/{n}", s.getVersion(kind))
			r.Get("/versions/{n}/styles", s.versionStyles(kind))
		})
	}
}

func (s *Server) listDocuments(kind document.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ms, err := s.svc.List(r.Context(), kind)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if ms == nil {
			ms = []document.Master{}
		}
		writeJSON(w, http.StatusOK, ms)
	}
}

func (s *Server) createDocument(kind document.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := decode(r, &req); err != nil {
			s.fail(w, r, err)
			return
		}
		m, err := s.svc.Create(r.Context(), kind, req.Name, req.Description, req.Content)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

func (s *Server) getDocument(kind document.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := s.svc.GetKind(r.Context(), kind, chi.URLParam(r, "id"))
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func (s *Server) archiveDocument(kind document.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := s.svc.GetKind(r.Context(), kind, id); err != nil {
			s.fail(w, r, err)
			return
		}
		m, err := s.svc.Archive(r.Context(), id)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func (s *Server) exportDocument(kind document.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := s.svc.GetKind(r.Context(), kind, id); err != nil {
			s.fail(w, r, err)
			return
		}
		doc, err := s.svc.Export(r.Context(), id, 0)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

func (s *Server) listVersions(kind document.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := s.svc.GetKind(r.Context(), kind, id); err != nil {
			s.fail(w, r, err)
			return
		}
		vs, err := s.svc.Versions(r.Context(), id)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if vs == nil {
			vs = []document.Version{}
		}
		writeJSON(w, http.StatusOK, vs)
	}
}

func (s *Server) publishVersion(kind document.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req publishRequest
		if err := decode(r, &req); err != nil {
			s.fail(w, r, err)
			return
		}
		if _, err := s.svc.GetKind(r.Context(), kind, id); err != nil {
			s.fail(w, r, err)
			return
		}
		v, err := s.svc.Publish(r.Context(), id, req.Comment, req.Content)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, v)
	}
}

func (s *Server) getVersion(kind document.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		n, err := versionParam(r)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if _, err := s.svc.GetKind(r.Context(), kind, id); err != nil {
			s.fail(w, r, err)
			return
		}
		v, err := s.svc.Version(r.Context(), id, n)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func (s *Server) versionStyles(kind document.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		n, err := versionParam(r)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if _, err := s.svc.GetKind(r.Context(), kind, id); err != nil {
			s.fail(w, r, err)
			return
		}
		styles, err := s.svc.ResolvedStyles(r.Context(), id, n)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, styles)
	}
}

func (s *Server) importDocument(w http.ResponseWriter, r *http.Request) {
	var doc document.Document
	if err := decode(r, &doc); err != nil {
		s.fail(w, r, err)
		return
	}
	m, err := s.svc.Import(r.Context(), doc)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}
