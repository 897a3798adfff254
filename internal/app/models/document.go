package models

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ValidFlag is the reviewer verdict on an uploaded document
type ValidFlag string

const (
	ValidYes ValidFlag = "SI"
	ValidNo  ValidFlag = "NO"
)

// DocumentSlot (solicitud_doc) pairs one document type with one application
type DocumentSlot struct {
	ID             int64     `json:"id_solicitud_doc"`
	ApplicationID  int64     `json:"id_solicitud"`
	DocumentTypeID int64     `json:"id_documento"`
	DocumentName   string    `json:"nombre_documento"`
	Mandatory      string    `json:"obligatorio"`
	FileName       *string   `json:"url_archivo"`
	Valid          ValidFlag `json:"valido"`
}

// Uploaded reports whether a file is linked to the slot
func (s DocumentSlot) Uploaded() bool {
	return s.FileName != nil && *s.FileName != ""
}

// StoredDocument is a slot's binary content ready for download
type StoredDocument struct {
	FileName    string
	ContentType string
	Content     []byte
}

var affirmative = map[string]struct{}{
	"SI":   {},
	"S":    {},
	"YES":  {},
	"Y":    {},
	"TRUE": {},
	"1":    {},
}

// IsAffirmative reports whether a mandatory flag means "yes". Case and
// accents are ignored, so "sí", "Si" and "SÍ" all count.
func IsAffirmative(flag string) bool {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(flag))
	if err != nil {
		return false
	}
	_, ok := affirmative[cases.Upper(language.Und).String(folded)]
	return ok
}

// MissingRequired returns the names of mandatory slots that have no upload,
// in slot order.
func MissingRequired(slots []DocumentSlot) []string {
	missing := make([]string, 0)
	for _, s := range slots {
		if IsAffirmative(s.Mandatory) && !s.Uploaded() {
			missing = append(missing, s.DocumentName)
		}
	}
	return missing
}
