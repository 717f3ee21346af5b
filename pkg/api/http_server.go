package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"studentdb/pkg/algo"
	"studentdb/pkg/bench"
	"studentdb/pkg/common"
	"studentdb/pkg/core"
	"studentdb/pkg/query"
)

type Server struct {
	reg     *core.Registry
	httpSrv *http.Server
}

// NewServer builds the API server for addr. The http.Server is created here
// so that Shutdown may run before or during Start.
func NewServer(reg *core.Registry, addr string) *Server {
	s := &Server{reg: reg}
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/students", s.handleStudents)
	mux.HandleFunc("/api/students/get", s.handleGet)
	mux.HandleFunc("/api/students/update", s.handleUpdate)
	mux.HandleFunc("/api/students/delete", s.handleDelete)
	mux.HandleFunc("/api/sort", s.handleSort)
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/query", s.handleQuery)
	mux.HandleFunc("/api/export", s.handleExport)
	mux.HandleFunc("/api/import", s.handleImport)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/reset", s.handleReset)
	return mux
}

// Start serves until Shutdown is called. It returns nil after a clean
// shutdown, including one that happened before Start.
func (s *Server) Start() error {
	log.Printf("[API] Server listening on %s...", s.httpSrv.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrDuplicateID):
		status = http.StatusConflict
	case errors.Is(err, core.ErrInvalid), errors.Is(err, algo.ErrUnknownAlgorithm):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}

func (s *Server) handleStudents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.reg.List())
	case http.MethodPost:
		var rec common.Record
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, "Invalid body", http.StatusBadRequest)
			return
		}
		if err := s.reg.Add(rec); err != nil {
			writeError(w, err)
			return
		}
		stored, _ := s.reg.Get(rec.ID)
		writeJSON(w, http.StatusCreated, stored)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	id := common.StudentID(r.URL.Query().Get("id"))
	rec, ok := s.reg.Get(id)
	if !ok {
		http.Error(w, "Student not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ID      common.StudentID `json:"id"`
		Student common.Record    `json:"student"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if err := s.reg.Update(req.ID, req.Student); err != nil {
		writeError(w, err)
		return
	}
	stored, _ := s.reg.Get(req.Student.ID)
	writeJSON(w, http.StatusOK, stored)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := common.StudentID(r.URL.Query().Get("id"))
	if err := s.reg.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Deleted"))
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	q := r.URL.Query()

	alg, err := algo.ParseSortAlgorithm(defaultString(q.Get("algorithm"), "merge"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	key, err := algo.ParseKey(defaultString(q.Get("key"), "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	order, err := algo.ParseOrder(q.Get("order"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := s.reg.Sort(alg, key, order)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Printf("[API] Sorting %s (%s) by %s: %s ms avg over %d runs", strings.ToUpper(alg.String()), strings.ToUpper(order.String()), key, b.ElapsedTimeMs, b.Iterations)
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	q := r.URL.Query()

	alg, err := algo.ParseSearchAlgorithm(defaultString(q.Get("algorithm"), "linear"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	key, err := algo.ParseKey(defaultString(q.Get("key"), "name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	text := q.Get("q")
	if err := common.ValidateSearchQuery(string(key), text); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := s.reg.Search(alg, key, text)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Printf("[API] Search %s by %s for %q: found=%v, %s ms avg", strings.ToUpper(alg.String()), key, text, b.Found, b.ElapsedTimeMs)
	writeJSON(w, http.StatusOK, b)
}

type queryResponse struct {
	Statement string `json:"statement"`
	bench.Bundle
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	stmt, err := query.Parse(req.Query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if stmt.Kind == query.KindSearch {
		if err := common.ValidateSearchQuery(string(stmt.Key), stmt.Query); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	var b bench.Bundle
	if stmt.Kind == query.KindSort {
		b, err = s.reg.Sort(stmt.SortAlgo, stmt.Key, stmt.Order)
	} else {
		b, err = s.reg.Search(stmt.SearchAlgo, stmt.Key, stmt.Query)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	b.Data = stmt.Truncate(b.Data)
	writeJSON(w, http.StatusOK, queryResponse{Statement: stmt.String(), Bundle: b})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Disposition", "attachment;filename=data_mahasiswa.json")
	writeJSON(w, http.StatusOK, s.reg.List())
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var records []common.Record
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		http.Error(w, "Invalid JSON file: expected an array of students", http.StatusBadRequest)
		return
	}
	if err := s.reg.Replace(records); err != nil {
		writeError(w, err)
		return
	}
	log.Printf("[API] Imported %d students", len(records))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"record_count": len(records),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	writeJSON(w, http.StatusOK, s.reg.Stats())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.reg.Reset(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Println("[API] Collection reset")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Database Reset Successful"))
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
