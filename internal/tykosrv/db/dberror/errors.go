// Package dberror defines the errors returned by the Tyko data layer. Every error
// carries the HTTP status code the API answers with.
package dberror

import (
	"net/http"

	"github.com/uiuclibrary/tyko/internal/common/apperrors"
)

var (
	ErrDatabase      apperrors.Error = apperrors.New("Problem accessing data").SetStatusCode(http.StatusInternalServerError)
	ErrNotFound      apperrors.Error = ErrDatabase.New("not found").SetStatusCode(http.StatusNotFound)
	ErrAlreadyExists apperrors.Error = ErrDatabase.New("already exists").SetStatusCode(http.StatusConflict)
	ErrInvalidInput  apperrors.Error = ErrDatabase.New("invalid input").SetStatusCode(http.StatusBadRequest)
	ErrInvalidKeys   apperrors.Error = ErrInvalidInput.New("invalid keys").SetStatusCode(http.StatusBadRequest)
	ErrAmbiguous     apperrors.Error = ErrDatabase.New("ambiguous match")
	ErrNoTable       apperrors.Error = ErrDatabase.New("missing table")
	ErrSchemaVersion apperrors.Error = ErrDatabase.New("incompatible schema version")
)
