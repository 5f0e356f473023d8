package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/draft"
	"github.com/matzehuels/bulletins/pkg/editor"
	"github.com/matzehuels/bulletins/pkg/service"
	"github.com/matzehuels/bulletins/pkg/style"
	"github.com/matzehuels/bulletins/pkg/wizard"
)

type startDraftRequest struct {
	Kind     string `json:"kind"`
	MasterID string `json:"master_id,omitempty"`
}

type commitRequest struct {
	Comment string `json:"comment,omitempty"`
}

type commitResponse struct {
	Master  document.Master  `json:"master"`
	Version document.Version `json:"version"`
}

type containerStyleRequest struct {
	Container document.ContainerRef `json:"container"`
	Style     *style.Config         `json:"style_config"`
}

// Propagation mirrors editor.PropagationResult on the wire.
type Propagation struct {
	Containers int `json:"containers"`
	Inheriting int `json:"inheriting"`
	Manual     int `json:"manual"`
}

type containerStyleResponse struct {
	Draft       *draft.Draft `json:"draft"`
	Propagation Propagation  `json:"propagation"`
}

type fieldStyleRequest struct {
	Style *style.Config `json:"style_config"`
}

type fieldValueRequest struct {
	Value any `json:"value"`
}

type addFieldRequest struct {
	Container document.ContainerRef `json:"container"`
	Field     document.Field        `json:"field"`
}

type moveFieldRequest struct {
	Container document.ContainerRef `json:"container"`
	Index     int                   `json:"index"`
}

type gotoRequest struct {
	Step wizard.Step `json:"step"`
}

func (s *Server) draftRoutes(r chi.Router) {
	r.Post("/", s.startDraft)
	r.Get("/", s.listDrafts)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", s.getDraft)
		r.Delete("/", s.discardDraft)
		r.Post("/commit", s.commitDraft)
		r.Get("/styles", s.draftStyles)
		r.Put("/containers/style", s.setContainerStyle)
		r.Post("/fields", s.addField)
		r.Route("/fields/{fid}", func(r chi.Router) {
			r.Delete("/", s.removeField)
			r.Put("/style", s.setFieldStyle)
			r.Post("/reset", s.resetFieldStyle)
			r.Post("/manual", s.markFieldManual)
			r.Put("/value", s.setFieldValue)
			r.Post("/move", s.moveField)
		})
		r.Post("/sections", s.addSection)
		r.Post("/sections/{sid}/blocks", s.addBlock)
		r.Post("/wizard/next", s.wizardNext)
		r.Post("/wizard/back", s.wizardBack)
		r.Post("/wizard/goto", s.wizardGoTo)
	})
}

// draftResult writes the outcome of a draft edit.
func (s *Server) draftResult(w http.ResponseWriter, r *http.Request, d *draft.Draft, err error) {
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) startDraft(w http.ResponseWriter, r *http.Request) {
	var req startDraftRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	kind, err := document.ParseKind(req.Kind)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := s.svc.StartDraft(r.Context(), kind, req.MasterID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) listDrafts(w http.ResponseWriter, r *http.Request) {
	ds, err := s.svc.Drafts(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if ds == nil {
		ds = []*draft.Draft{}
	}
	writeJSON(w, http.StatusOK, ds)
}

func (s *Server) getDraft(w http.ResponseWriter, r *http.Request) {
	d, err := s.svc.Draft(r.Context(), chi.URLParam(r, "id"))
	s.draftResult(w, r, d, err)
}

func (s *Server) discardDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DiscardDraft(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) commitDraft(w http.ResponseWriter, r *http.Request) {
	var req commitRequest
	body, err := readBody(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if len(body) > 0 {
		if err := service.DecodeJSON(body)(&req); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	m, v, err := s.svc.CommitDraft(r.Context(), chi.URLParam(r, "id"), req.Comment)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, commitResponse{Master: m, Version: v})
}

func (s *Server) draftStyles(w http.ResponseWriter, r *http.Request) {
	styles, err := s.svc.DraftStyles(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, styles)
}

func (s *Server) setContainerStyle(w http.ResponseWriter, r *http.Request) {
	var req containerStyleRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	d, res, err := s.svc.SetContainerStyle(r.Context(), chi.URLParam(r, "id"), req.Container, req.Style)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, containerStyleResponse{Draft: d, Propagation: propagation(res)})
}

func propagation(res editor.PropagationResult) Propagation {
	return Propagation{Containers: res.Containers, Inheriting: res.Inheriting, Manual: res.Manual}
}

func (s *Server) addField(w http.ResponseWriter, r *http.Request) {
	var req addFieldRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := s.svc.AddField(r.Context(), chi.URLParam(r, "id"), req.Container, req.Field)
	s.draftResult(w, r, d, err)
}

func (s *Server) removeField(w http.ResponseWriter, r *http.Request) {
	d, err := s.svc.RemoveField(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "fid"))
	s.draftResult(w, r, d, err)
}

func (s *Server) setFieldStyle(w http.ResponseWriter, r *http.Request) {
	var req fieldStyleRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := s.svc.SetFieldStyle(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "fid"), req.Style)
	s.draftResult(w, r, d, err)
}

func (s *Server) resetFieldStyle(w http.ResponseWriter, r *http.Request) {
	d, err := s.svc.ResetFieldStyle(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "fid"))
	s.draftResult(w, r, d, err)
}

func (s *Server) markFieldManual(w http.ResponseWriter, r *http.Request) {
	d, err := s.svc.MarkFieldManual(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "fid"))
	s.draftResult(w, r, d, err)
}

func (s *Server) setFieldValue(w http.ResponseWriter, r *http.Request) {
	var req fieldValueRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := s.svc.SetFieldValue(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "fid"), req.Value)
	s.draftResult(w, r, d, err)
}

func (s *Server) moveField(w http.ResponseWriter, r *http.Request) {
	var req moveFieldRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := s.svc.MoveField(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "fid"), req.Container, req.Index)
	s.draftResult(w, r, d, err)
}

func (s *Server) addSection(w http.ResponseWriter, r *http.Request) {
	var sec document.Section
	if err := decode(r, &sec); err != nil {
		s.fail(w, r, err)
		return
	}
	if sec.Blocks == nil {
		sec.Blocks = []document.Block{}
	}
	d, err := s.svc.AddSection(r.Context(), chi.URLParam(r, "id"), sec)
	s.draftResult(w, r, d, err)
}

func (s *Server) addBlock(w http.ResponseWriter, r *http.Request) {
	var b document.Block
	if err := decode(r, &b); err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := s.svc.AddBlock(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "sid"), b)
	s.draftResult(w, r, d, err)
}

func (s *Server) wizardNext(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := s.svc.WizardNext(r.Context(), chi.URLParam(r, "id"), service.DecodeJSON(body))
	s.draftResult(w, r, d, err)
}

func (s *Server) wizardBack(w http.ResponseWriter, r *http.Request) {
	d, err := s.svc.WizardBack(r.Context(), chi.URLParam(r, "id"))
	s.draftResult(w, r, d, err)
}

func (s *Server) wizardGoTo(w http.ResponseWriter, r *http.Request) {
	var req gotoRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := s.svc.WizardGoTo(r.Context(), chi.URLParam(r, "id"), req.Step)
	s.draftResult(w, r, d, err)
}
