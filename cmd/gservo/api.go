package main

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gorilla/mux"

	"github.com/mastercactapus/gservo/servo"
)

type api struct {
	http.Handler
	s       *servo.Session
	dataDir string
	sse     *sse.Server
}

func newAPI(s *servo.Session, dir string) *api {
	r := mux.NewRouter()

	a := &api{
		Handler: r,
		s:       s,
		dataDir: dir,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(ioutil.Discard, "", 0),
		}),
	}

	fs := http.FileServer(http.Dir(dir))
	r.PathPrefix("/data/").Handler(http.StripPrefix("/data", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case "GET":
			fs.ServeHTTP(w, req)
		case "PUT":
			a.putFile(w, req)
		case "DELETE":
			a.deleteFile(w, req)
		default:
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})))

	r.HandleFunc("/api/motors", a.motors).Methods("GET")
	r.HandleFunc("/api/discover", a.discover).Methods("POST")
	r.HandleFunc("/api/address", a.address).Methods("POST")
	r.HandleFunc("/api/programs/{slot}", a.loadProgram).Methods("PUT")
	r.HandleFunc("/api/programs/{slot}/run", a.runProgram).Methods("POST")

	r.PathPrefix("/events/").Handler(a.sse)
	go func() {
		for e := range s.Events() {
			data, err := json.Marshal(e)
			if err != nil {
				log.Printf("ERROR: marshal json: %+v", err)
				continue
			}
			a.sse.SendMessage("/events/servo", sse.SimpleMessage(string(data)))
		}
	}()

	return a
}

func (a *api) motors(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(a.s.Motors())
	if err != nil {
		log.Printf("ERROR: motors: %+v", err)
	}
}

func (a *api) discover(w http.ResponseWriter, req *http.Request) {
	if err := a.s.Discover(); err != nil {
		log.Printf("ERROR: discover: %+v", err)
		http.Error(w, err.Error(), 500)
	}
}

func (a *api) address(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Channel uint8 `json:"channel"`
		Current uint8 `json:"current"`
		New     uint8 `json:"new"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	err := a.s.SetAddress(body.Channel, body.Current, body.New)
	if err != nil {
		log.Printf("ERROR: set address: %+v", err)
		http.Error(w, err.Error(), 500)
	}
}

func slotVar(req *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(req)["slot"])
}

func (a *api) loadProgram(w http.ResponseWriter, req *http.Request) {
	slot, err := slotVar(req)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	data, err := ioutil.ReadAll(req.Body)
	if err != nil {
		return
	}
	p, err := parseProgram(data, int(a.s.MaxSteps))
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	if err = a.s.LoadProgram(slot, p); err != nil {
		log.Printf("ERROR: load program: %+v", err)
		http.Error(w, err.Error(), 500)
	}
}

func (a *api) runProgram(w http.ResponseWriter, req *http.Request) {
	slot, err := slotVar(req)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	if err = a.s.RunProgram(slot); err != nil {
		log.Printf("ERROR: run program: %+v", err)
		http.Error(w, err.Error(), 500)
	}
}

func safePath(base, name string) (bool, string) {
	if filepath.Separator != '/' && strings.ContainsRune(name, filepath.Separator) {
		log.Println("invalid path '" + name + "'")
		return false, ""
	}
	dir := base
	if dir == "" {
		dir = "."
	}
	fullName := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+name)))
	return true, fullName
}

func (a *api) putFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, req.URL.Path)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	data, err := ioutil.ReadAll(req.Body)
	if err != nil {
		return
	}
	// program files must at least parse before being stored
	if _, err = parseProgram(data, int(a.s.MaxSteps)); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	if err = ioutil.WriteFile(name, data, 0644); err != nil {
		log.Printf("ERROR: write file: %+v", err)
		http.Error(w, err.Error(), 500)
	}
}

func (a *api) deleteFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, req.URL.Path)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := os.Remove(name); err != nil {
		log.Printf("ERROR: delete file: %+v", err)
		http.Error(w, err.Error(), 500)
	}
}
