package model

import (
	"fmt"
	"strings"
)

// DocumentKind identifies one of the output document templates.
type DocumentKind string

const (
	KindCargo        DocumentKind = "CARGO"
	KindAutorizacion DocumentKind = "AUTORIZACION"
)

// AllKinds returns the supported document kinds in render order.
func AllKinds() []DocumentKind {
	return []DocumentKind{KindCargo, KindAutorizacion}
}

// ParseDocumentKind maps a kind name to its DocumentKind, case-insensitively.
func ParseDocumentKind(name string) (DocumentKind, error) {
	for _, kind := range AllKinds() {
		if strings.EqualFold(name, string(kind)) {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown document kind %q", name)
}

// DocumentContext is a flat key-value mapping ready for template substitution.
// One instance exists per (person, document kind).
type DocumentContext map[string]string

// GenerationOptions controls one generation run.
type GenerationOptions struct {
	// SelectedLocations filters sheets by tienda. Empty means every
	// location that has a non-empty tienda.
	SelectedLocations []string `json:"selectedLocations"`
	// CombinePerLocation additionally merges all rendered documents of a
	// kind within one location into a single combined file.
	CombinePerLocation bool `json:"combinePerLocation"`
	// Kinds lists the enabled document kinds. Must be non-empty.
	Kinds []DocumentKind `json:"kinds"`
	// DestinationRoot is the output directory root.
	DestinationRoot string `json:"destinationRoot"`
}

// SelectsLocation reports whether a tienda passes the location filter.
// An empty tienda never passes, regardless of the selection.
func (o GenerationOptions) SelectsLocation(tienda string) bool {
	if tienda == "" {
		return false
	}
	if len(o.SelectedLocations) == 0 {
		return true
	}
	for _, loc := range o.SelectedLocations {
		if loc == tienda {
			return true
		}
	}
	return false
}

// GenerationResult is the aggregate report of one generation run.
// It is created fresh per run and never mutated after return.
type GenerationResult struct {
	Success        bool     `json:"success"`
	FilesGenerated int      `json:"filesGenerated"`
	PeopleSkipped  int      `json:"peopleSkipped"`
	Errors         []string `json:"errors"`
	Warnings       []string `json:"warnings"`
	Message        string   `json:"message"`
}
