package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"medical-data-app/internal/delivery/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeForm_URLEncoded(t *testing.T) {
	form := url.Values{
		"medication_id":              {"M1"},
		"dosage":                     {"100mg"},
		"version":                    {"7"},
		"frequency":                  {""},
		"unknown_field":              {"ignored"},
		"__RequestVerificationToken": {"tok"},
	}

	var req dto.MedicationRequest
	decodeErrs, err := decodeForm(formRequest(http.MethodPost, "/Medications/Create", form, nil), &req)
	require.NoError(t, err)
	assert.Empty(t, decodeErrs)
	assert.Equal(t, "M1", req.MedicationID)
	assert.Equal(t, "100mg", req.Dosage)
	assert.Equal(t, int64(7), req.Version)
	assert.Empty(t, req.Frequency)
}

func TestDecodeForm_JSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/Doctors/Create", strings.NewReader(`{"doctor_id":"D1","name":"Bob"}`))
	r.Header.Set("Content-Type", "application/json")

	var req dto.DoctorRequest
	decodeErrs, err := decodeForm(r, &req)
	require.NoError(t, err)
	assert.Empty(t, decodeErrs)
	assert.Equal(t, "D1", req.DoctorID)
	assert.Equal(t, "Bob", req.Name)
}

func TestDecodeForm_UnsupportedType(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/Doctors/Create", strings.NewReader("<doctor/>"))
	r.Header.Set("Content-Type", "application/xml")

	var req dto.DoctorRequest
	_, err := decodeForm(r, &req)
	assert.ErrorIs(t, err, errUnsupportedContentType)
}

func TestDecodeForm_MalformedFieldKeepsOtherValues(t *testing.T) {
	form := url.Values{
		"patient_id": {"P1"},
		"name":       {"Alice"},
		"age":        {"abc"},
		"version":    {"two"},
	}

	var req dto.PatientRequest
	decodeErrs, err := decodeForm(formRequest(http.MethodPost, "/Patients/Edit/P1", form, nil), &req)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"age":     "age must be a whole number",
		"version": "version must be a whole number",
	}, decodeErrs)
	assert.Equal(t, "P1", req.PatientID)
	assert.Equal(t, "Alice", req.Name)
	assert.Nil(t, req.Age)
}

func TestDecodeForm_JSONTypeMismatch(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/Patients/Create", strings.NewReader(`{"patient_id":"P1","age":"x","name":"Alice"}`))
	r.Header.Set("Content-Type", "application/json")

	var req dto.PatientRequest
	decodeErrs, err := decodeForm(r, &req)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"age": "age must be a whole number"}, decodeErrs)
	assert.Equal(t, "Alice", req.Name)
}

func TestDecodeForm_BrokenJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/Patients/Create", strings.NewReader(`{"patient_id":`))
	r.Header.Set("Content-Type", "application/json")

	var req dto.PatientRequest
	decodeErrs, err := decodeForm(r, &req)
	assert.Error(t, err)
	assert.Nil(t, decodeErrs)
}
