package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/musictools/chord"
	"github.com/jsphweid/musictools/constants"
	"github.com/jsphweid/musictools/explorer"
	"github.com/jsphweid/musictools/expression"
	"github.com/jsphweid/musictools/melody"
	"github.com/jsphweid/musictools/model"
	"github.com/jsphweid/musictools/pcset"
	"github.com/jsphweid/musictools/sample"
	"github.com/jsphweid/musictools/scale"
	"github.com/jsphweid/musictools/settings"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

const (
	maxRenders      = 64
	maxBodyBytes    = 1 << 20
	defaultSampleTo = 10
	defaultPoints   = 500
	maxPoints       = 5000
)

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: MUSICTOOLS_ADDR or :8080)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the explorer and melody generator over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = constants.GetAddr()
		}
		srv := &http.Server{
			Addr:              addr,
			Handler:           NewRouter(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		slog.Info("listening", "addr", addr)
		return srv.ListenAndServe()
	},
}

// renderStore keeps the latest rendered midi files in memory.
type renderStore struct {
	mu    sync.Mutex
	order []string
	files map[string][]byte
	limit int
}

func newRenderStore(limit int) *renderStore {
	return &renderStore{files: make(map[string][]byte), limit: limit}
}

func (s *renderStore) put(data []byte) string {
	id := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[id] = data
	s.order = append(s.order, id)
	for len(s.order) > s.limit {
		delete(s.files, s.order[0])
		s.order = s.order[1:]
	}
	return id
}

func (s *renderStore) get(id string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[id]
	return data, ok
}

var renders = newRenderStore(maxRenders)

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/explorer", HandleExplorer).Methods("POST")
	router.HandleFunc("/melody", HandleMelody).Methods("POST")
	router.HandleFunc("/melody/{id}", HandleGetMelody).Methods("GET")
	router.HandleFunc("/expressions/sample", HandleSample).Methods("POST")
	return cors.Default().Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("could not write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("could not decode request body: %w", err)
	}
	return nil
}

// explorerResponse carries the chord preview pitches as ChordNotes, e.g. "60-64-67".
type explorerResponse struct {
	Scale      string         `json:"scale"`
	ChordRoot  int            `json:"chord_root"`
	ChordMask  int            `json:"chord_mask"`
	ChordNotes string         `json:"chord_notes"`
	Views      explorer.Views `json:"views"`
}

func chordNotes(st explorer.State) string {
	var notes []uint8
	for _, e := range sample.Chord(st.Scale, st.Chord).Events {
		notes = append(notes, e.Pitch)
	}
	return chord.Key(notes)
}

// HandleExplorer applies edits to the posted state and returns the new
// state with every derived view.
func HandleExplorer(w http.ResponseWriter, r *http.Request) {
	var input model.ExplorerRequest
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	st := explorer.Default()
	if input.Scale != "" {
		s, err := scale.Parse(input.Scale)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		c := chord.Empty()
		if input.ChordMask != 0 {
			mask, err := pcset.FromDecimal(input.ChordMask)
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			c.Mask = mask
			if input.ChordRoot != nil {
				c.Root = *input.ChordRoot
			}
		}
		st = explorer.New(s, c)
	}

	sess := explorer.NewSession(st)
	for _, e := range input.Edits {
		edit, err := explorer.FromRequest(e)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		sess.Mark(edit)
	}
	views, err := sess.Sync()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	st = sess.State()
	writeJSON(w, http.StatusOK, explorerResponse{
		Scale:      st.Scale.String(),
		ChordRoot:  st.Chord.Root,
		ChordMask:  st.Chord.Mask.Decimal(),
		ChordNotes: chordNotes(st),
		Views:      views,
	})
}

// HandleMelody generates the posted settings and keeps the midi file for
// HandleGetMelody.
func HandleMelody(w http.ResponseWriter, r *http.Request) {
	input := settings.Default()
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if input.Expressions == nil {
		input.Expressions = []string{}
	}

	sess := melody.NewSession(input, melody.WithMaxSteps(constants.GetMaxSteps()), melody.WithRests())
	if problems := sess.Validate(); len(problems) > 0 {
		writeJSON(w, http.StatusBadRequest, model.ValidationResponse{
			Error:    melody.ErrNotReady.Error(),
			Problems: problems,
		})
		return
	}

	var buf bytes.Buffer
	events, err := sess.Render(&buf)
	if err != nil {
		status := http.StatusBadRequest
		var fe *melody.FieldError
		if !errors.As(err, &fe) && !errors.Is(err, melody.ErrGenerationTimeout) {
			status = http.StatusInternalServerError
		}
		writeError(w, status, err)
		return
	}

	id := renders.put(buf.Bytes())
	slog.Debug("rendered melody", "id", id, "events", len(events))
	writeJSON(w, http.StatusOK, model.MelodyResponse{ID: id, Events: events, Beats: melody.Beats(events)})
}

func HandleGetMelody(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	data, ok := renders.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("no melody with id %q", id))
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".mid"))
	w.Write(data)
}

// HandleSample evaluates every posted expression over a range, one series
// per bank letter. A failing expression ends its series early and reports
// why.
func HandleSample(w http.ResponseWriter, r *http.Request) {
	input := model.SampleRequest{To: defaultSampleTo, Points: defaultPoints}
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if input.Points < 1 || input.Points > maxPoints {
		writeError(w, http.StatusBadRequest, fmt.Errorf("points must be between 1 and %v", maxPoints))
		return
	}
	if len(input.Expressions) > settings.MaxExpressions {
		writeError(w, http.StatusBadRequest, fmt.Errorf("at most %v expressions are allowed", settings.MaxExpressions))
		return
	}

	bank := expression.NewBank()
	names := make([]string, len(input.Expressions))
	for i, e := range input.Expressions {
		names[i] = string(rune('A' + i))
		bank.Store(names[i], e)
	}

	res := model.SampleResponse{Series: []model.SampleSeries{}}
	for i, name := range names {
		if input.Expressions[i] == "" {
			continue
		}
		series := model.SampleSeries{Name: name, Points: [][2]float64{}}
		points, err := bank.Sample(name, input.From, input.To, input.Points)
		for _, p := range points {
			// JSON has no NaN or infinity
			if math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
				err = fmt.Errorf("%v is not a finite number at x = %v", p.Y, p.X)
				break
			}
			series.Points = append(series.Points, [2]float64{p.X, p.Y})
		}
		if err != nil {
			series.Error = fmt.Sprintf("%v failed to evaluate: %v", name, err)
		}
		res.Series = append(res.Series, series)
	}
	writeJSON(w, http.StatusOK, res)
}
