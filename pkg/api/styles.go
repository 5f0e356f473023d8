package api

import (
	"net/http"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/style"
)

type combineRequest struct {
	Parent *style.Config `json:"parent"`
	Child  *style.Config `json:"child"`
}

type resolveRequest struct {
	Field          document.Field `json:"field"`
	ContainerStyle *style.Config  `json:"container_style"`
}

type propagateRequest struct {
	Fields         []document.Field `json:"fields"`
	ContainerStyle *style.Config    `json:"container_style"`
}

func (s *Server) combine(w http.ResponseWriter, r *http.Request) {
	var req combineRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Combine(req.Parent, req.Child))
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Resolve(req.Field, req.ContainerStyle))
}

func (s *Server) propagate(w http.ResponseWriter, r *http.Request) {
	var req propagateRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	out := s.svc.Propagate(r.Context(), req.Fields, req.ContainerStyle)
	if out == nil {
		out = []document.Field{}
	}
	writeJSON(w, http.StatusOK, out)
}
