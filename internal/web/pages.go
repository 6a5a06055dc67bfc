package web

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/todolist"
)

type itemView struct {
	ID      string
	Title   string
	Done    bool
	Editing bool
}

type statusLink struct {
	Name   string
	Href   string
	Active bool
}

type pageData struct {
	Items     []itemView
	Status    string
	Statuses  []statusLink
	Query     string
	Done      int
	Remaining int
	Total     int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	status, err := todolist.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	query := r.URL.Query().Get("q")

	s.mu.Lock()
	s.ctl.SetStatus(status)
	data := s.pageData(query)
	s.mu.Unlock()

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		s.log.Error("render", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// pageData snapshots the list; callers hold s.mu.
func (s *Server) pageData(query string) pageData {
	visible := todolist.Filter(s.ctl.Visible(), query)
	items := make([]itemView, 0, len(visible))
	for _, it := range visible {
		items = append(items, itemView{ID: it.ID, Title: it.Title(), Done: it.Done(), Editing: it.Editable})
	}

	cur := s.ctl.Status()
	links := make([]statusLink, 0, 3)
	for _, st := range []todolist.Status{todolist.All, todolist.Active, todolist.Completed} {
		links = append(links, statusLink{Name: st.String(), Href: indexURL(st.String(), query), Active: st == cur})
	}

	remaining := len(s.ctl.Remaining())
	return pageData{
		Items:     items,
		Status:    cur.String(),
		Statuses:  links,
		Query:     query,
		Done:      s.ctl.Len() - remaining,
		Remaining: remaining,
		Total:     s.ctl.Len(),
	}
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.ctl.Submit(r.FormValue("title"))
	s.mu.Unlock()
	redirectBack(w, r)
}

// handleItem resolves {id} and applies fn. Unknown ids are ignored.
func (s *Server) handleItem(fn func(*model.Item, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		if it, idx := s.ctl.Find(r.PathValue("id")); idx != -1 {
			fn(it, r)
		}
		s.mu.Unlock()
		redirectBack(w, r)
	}
}

func (s *Server) toggle(it *model.Item, _ *http.Request) { s.ctl.Toggle(it) }

func (s *Server) remove(it *model.Item, _ *http.Request) { s.ctl.Remove(s.ctl.IndexOf(it)) }

func (s *Server) edit(it *model.Item, _ *http.Request) { s.ctl.Edit(it) }

func (s *Server) update(it *model.Item, r *http.Request) { s.ctl.Update(it, r.FormValue("title")) }

func (s *Server) cancel(it *model.Item, _ *http.Request) { s.ctl.CancelEditing(it) }

func redirectBack(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, indexURL(r.FormValue("status"), r.FormValue("q")), http.StatusSeeOther)
}

func indexURL(status, query string) string {
	v := url.Values{}
	if status != "" && status != todolist.All.String() {
		v.Set("status", status)
	}
	if query != "" {
		v.Set("q", query)
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}
