package formats

import (
	"github.com/uiuclibrary/tyko/internal/common/apperrors"
	"github.com/uiuclibrary/tyko/internal/tykosrv/tykocommon"
)

var (
	ErrMissingData   apperrors.Error = tykocommon.ErrInvalidInput.New("Missing required data")
	ErrUnusedParams  apperrors.Error = tykocommon.ErrInvalidInput.New("Unused parameters")
	ErrInvalidKeys   apperrors.Error = tykocommon.ErrInvalidInput.New("Invalid Key(s)")
	ErrInvalidValue  apperrors.Error = tykocommon.ErrInvalidInput.New("Invalid value")
	ErrUnknownFormat apperrors.Error = tykocommon.ErrInvalidInput.New("Unknown format")
	ErrInvalidEnum   apperrors.Error = tykocommon.ErrInvalidInput.New("Invalid enumeration id")
)
