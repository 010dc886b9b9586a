package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// queryParser pulls typed values out of URL query parameters, remembering
// the first parameter that failed to parse.
type queryParser struct {
	values url.Values
	badKey string
}

func newQueryParser(values url.Values) *queryParser {
	return &queryParser{values: values}
}

func (p *queryParser) int64Ptr(key string) *int64 {
	s := p.values.Get(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		p.fail(key)
		return nil
	}
	return &v
}

func (p *queryParser) intPtr(key string) *int {
	s := p.values.Get(key)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		p.fail(key)
		return nil
	}
	return &v
}

func (p *queryParser) intVal(key string) int {
	v := p.intPtr(key)
	if v == nil {
		return 0
	}
	return *v
}

func (p *queryParser) floatPtr(key string) *float64 {
	s := p.values.Get(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.fail(key)
		return nil
	}
	return &v
}

func (p *queryParser) boolPtr(key string) *bool {
	s := p.values.Get(key)
	if s == "" {
		return nil
	}
	v := s == "true"
	return &v
}

func (p *queryParser) fail(key string) {
	if p.badKey == "" {
		p.badKey = key
	}
}
