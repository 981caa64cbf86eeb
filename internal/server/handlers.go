package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"codeberg.org/snonux/bgrhyme/internal/batch"
	"codeberg.org/snonux/bgrhyme/internal/rhyme"
	"codeberg.org/snonux/bgrhyme/internal/transcribe"
)

type transcription struct {
	Word  string `json:"word"`
	IPA   string `json:"ipa,omitempty"`
	Error string `json:"error,omitempty"`
}

type batchRequest struct {
	Words []string `json:"words"`
}

type batchResponse struct {
	Results []transcription `json:"results"`
}

type rhymeResponse struct {
	Word   string   `json:"word"`
	Key    string   `json:"key"`
	Rhymes []string `json:"rhymes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logger.Error("encode error", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, s.logger, status, errorResponse{Error: msg})
}

// statusFor maps input errors to 4xx codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, batch.ErrEmptyText), errors.Is(err, batch.ErrNoCyrillic), errors.Is(err, transcribe.ErrFormat):
		return http.StatusBadRequest
	case errors.Is(err, rhyme.ErrUnstressed), errors.Is(err, rhyme.ErrNoStress):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) transcribe(word string) (string, error) {
	if err := batch.ValidateBulgarianText(word); err != nil {
		return "", err
	}
	return s.tr.Transcribe(word)
}

func (s *Server) handleTranscribeWord(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	if word == "" {
		s.writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
		return
	}
	ipa, err := s.transcribe(word)
	if err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, s.logger, http.StatusOK, transcription{Word: word, IPA: ipa})
}

func (s *Server) handleTranscribeBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if len(req.Words) == 0 {
		s.writeError(w, http.StatusBadRequest, "'words' must not be empty")
		return
	}
	if len(req.Words) > MaxBatchWords {
		s.writeError(w, http.StatusRequestEntityTooLarge, "too many words")
		return
	}

	resp := batchResponse{Results: make([]transcription, 0, len(req.Words))}
	for _, word := range req.Words {
		t := transcription{Word: word}
		ipa, err := s.transcribe(word)
		if err != nil {
			t.Error = err.Error()
		} else {
			t.IPA = ipa
		}
		resp.Results = append(resp.Results, t)
	}
	writeJSON(w, s.logger, http.StatusOK, resp)
}

func (s *Server) handleRhyme(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	if word == "" {
		s.writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
		return
	}
	if err := batch.ValidateBulgarianText(word); err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}
	key, _, err := s.builder.WordKey(word)
	if err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}

	resp := rhymeResponse{Word: word, Key: key, Rhymes: []string{}}
	if s.classes != nil {
		if members, ok := s.classes.Buckets[key]; ok {
			resp.Rhymes = members
		}
	}
	writeJSON(w, s.logger, http.StatusOK, resp)
}
