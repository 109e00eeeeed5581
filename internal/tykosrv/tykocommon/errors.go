package tykocommon

import (
	"net/http"

	"github.com/uiuclibrary/tyko/internal/common/apperrors"
)

var (
	ErrInvalidInput apperrors.Error = apperrors.New("Invalid data").SetStatusCode(http.StatusBadRequest)
	ErrInvalidDate  apperrors.Error = ErrInvalidInput.New("invalid date")
	ErrPBCore       apperrors.Error = apperrors.New("unable to create pbcore document").SetStatusCode(http.StatusInternalServerError)
)
