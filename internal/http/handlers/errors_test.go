package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"invoice-engine/internal/domain"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ValidationError{Field: "id"}, http.StatusBadRequest},
		{domain.MissingDataError{Field: "to"}, http.StatusBadRequest},
		{domain.InvalidAddressError{Address: "x"}, http.StatusBadRequest},
		{domain.OversizedAttachmentError{}, http.StatusRequestEntityTooLarge},
		{domain.NotFoundError{Resource: "invoice"}, http.StatusNotFound},
		{domain.ProviderError{Provider: "sendgrid"}, http.StatusBadGateway},
		{domain.InternalError{Msg: "x"}, http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		got, _ := StatusFor(tc.err)
		assert.Equal(t, tc.want, got, "%T", tc.err)
	}
}
