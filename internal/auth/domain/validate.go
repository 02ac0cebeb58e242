package domain

import (
	"strings"
	"unicode"
)

// UFs lists the 27 Brazilian federative units.
var UFs = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA", "MT", "MS", "MG",
	"PA", "PB", "PR", "PE", "PI", "RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

var ufSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(UFs))
	for _, uf := range UFs {
		m[uf] = struct{}{}
	}
	return m
}()

func ValidUF(uf string) bool {
	_, ok := ufSet[strings.ToUpper(strings.TrimSpace(uf))]
	return ok
}

// Digits keeps only ASCII digits.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCPF checks length and rejects repeated-digit numbers. Check digits are not verified.
func ValidCPF(s string) bool {
	d := Digits(s)
	if len(d) != 11 {
		return false
	}
	return strings.Count(d, d[:1]) != len(d)
}

func ValidCNPJ(s string) bool {
	return len(Digits(s)) == 14
}

// Normalize trims the request and reduces documents to digits.
func (r *SyncUserRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	r.PersonType = strings.ToUpper(strings.TrimSpace(r.PersonType))
	r.Document = Digits(r.Document)
	r.WhatsApp = Digits(r.WhatsApp)
	r.UF = strings.ToUpper(strings.TrimSpace(r.UF))
	r.City = strings.TrimSpace(r.City)
}

// Validate expects a normalized request.
func (r *SyncUserRequest) Validate() error {
	if r.FirebaseUID == "" {
		return &ProfileError{Field: "firebase_uid", Msg: "required"}
	}
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return &ProfileError{Field: "email", Msg: "invalid email"}
	}
	if r.Name == "" || !strings.ContainsFunc(r.Name, unicode.IsLetter) {
		return &ProfileError{Field: "name", Msg: "required"}
	}
	switch PersonType(r.PersonType) {
	case PersonPF:
		if !ValidCPF(r.Document) {
			return &ProfileError{Field: "document", Msg: "invalid CPF"}
		}
	case PersonPJ:
		if !ValidCNPJ(r.Document) {
			return &ProfileError{Field: "document", Msg: "invalid CNPJ"}
		}
	default:
		return &ProfileError{Field: "person_type", Msg: "must be PF or PJ"}
	}
	if len(r.WhatsApp) < 10 || len(r.WhatsApp) > 13 {
		return &ProfileError{Field: "whatsapp", Msg: "expected 10 to 13 digits"}
	}
	if !ValidUF(r.UF) {
		return &ProfileError{Field: "uf", Msg: "unknown state"}
	}
	if r.City == "" {
		return &ProfileError{Field: "city", Msg: "required"}
	}
	return nil
}
