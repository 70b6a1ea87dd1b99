package client

import (
	"bytes"
	"encoding/json"

	"github.com/pt428/recipes/internal/client/models"
)

// payload is a successful response body after the {success, message, data}
// envelope has been removed.
type payload struct {
	data    json.RawMessage
	message string
}

// unwrap returns the envelope's data when the body is an object carrying a
// "data" key and the whole body otherwise.
func unwrap(body []byte) payload {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return payload{data: trimmed}
	}

	var env struct {
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil || env.Data == nil {
		return payload{data: trimmed, message: env.Message}
	}
	return payload{data: env.Data, message: env.Message}
}

func isArray(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '['
}

func isObject(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '{'
}

// decodePage reads a listing that is either a paginator object
// {data, current_page, last_page, total} or a bare array.
func decodePage(raw json.RawMessage) (*models.RecipePage, error) {
	page := &models.RecipePage{Recipes: []models.Recipe{}, TotalPages: 1}

	switch {
	case isArray(raw):
		if err := json.Unmarshal(raw, &page.Recipes); err != nil {
			return nil, err
		}
		page.Total = len(page.Recipes)

	case isObject(raw):
		var p struct {
			Data        []models.Recipe `json:"data"`
			CurrentPage int             `json:"current_page"`
			LastPage    int             `json:"last_page"`
			Total       int             `json:"total"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		if p.Data != nil {
			page.Recipes = p.Data
		}
		if p.LastPage > 0 {
			page.TotalPages = p.LastPage
		}
		page.Total = p.Total
	}

	return page, nil
}

// decodeList accepts a bare array or an envelope around one. Anything else
// is an empty list.
func decodeList[T any](body []byte) []T {
	out := []T{}

	raw := unwrap(body).data
	if !isArray(raw) {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return []T{}
	}
	return out
}
