package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() SyncUserRequest {
	return SyncUserRequest{
		FirebaseUID: "uid-1",
		Email:       " Ana@Example.com ",
		Name:        "Ana Souza",
		PersonType:  "pf",
		Document:    "123.456.789-09",
		WhatsApp:    "(11) 98765-4321",
		UF:          "sp",
		City:        "Campinas",
	}
}

func TestSyncUserRequest_Normalize(t *testing.T) {
	r := validRequest()
	r.Normalize()
	assert.Equal(t, "ana@example.com", r.Email)
	assert.Equal(t, "PF", r.PersonType)
	assert.Equal(t, "12345678909", r.Document)
	assert.Equal(t, "11987654321", r.WhatsApp)
	assert.Equal(t, "SP", r.UF)
	require.NoError(t, r.Validate())
}

func TestSyncUserRequest_Validate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*SyncUserRequest)
		field string
	}{
		{"repeated cpf", func(r *SyncUserRequest) { r.Document = "111.111.111-11" }, "document"},
		{"short cpf", func(r *SyncUserRequest) { r.Document = "1234" }, "document"},
		{"cnpj for pf", func(r *SyncUserRequest) { r.Document = "12.345.678/0001-95" }, "document"},
		{"pj with cnpj", func(r *SyncUserRequest) { r.PersonType = "PJ"; r.Document = "12.345.678/0001-95" }, ""},
		{"pj with cpf", func(r *SyncUserRequest) { r.PersonType = "PJ" }, "document"},
		{"unknown person type", func(r *SyncUserRequest) { r.PersonType = "XX" }, "person_type"},
		{"unknown uf", func(r *SyncUserRequest) { r.UF = "ZZ" }, "uf"},
		{"missing city", func(r *SyncUserRequest) { r.City = " " }, "city"},
		{"bad email", func(r *SyncUserRequest) { r.Email = "nope" }, "email"},
		{"short whatsapp", func(r *SyncUserRequest) { r.WhatsApp = "1234" }, "whatsapp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.edit(&r)
			r.Normalize()
			err := r.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var pe *ProfileError
			require.True(t, errors.As(err, &pe), "got %v", err)
			assert.Equal(t, tt.field, pe.Field)
			assert.ErrorIs(t, err, ErrInvalidProfileReq)
		})
	}
}

func TestValidUF(t *testing.T) {
	assert.Len(t, UFs, 27)
	assert.True(t, ValidUF("df"))
	assert.False(t, ValidUF("XX"))
}
