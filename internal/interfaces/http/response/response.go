package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "kudichain.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps an error to its HTTP representation. Bare domain
// sentinels get a status; anything unknown becomes a 500.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		})
		return
	}

	status, code := sentinelStatus(err)
	c.JSON(status, gin.H{
		"code":    code,
		"message": err.Error(),
	})
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}

func sentinelStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return http.StatusNotFound, "ERR_NOT_FOUND"
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return http.StatusConflict, "ERR_ALREADY_EXISTS"
	case errors.Is(err, domainerrors.ErrConflict), errors.Is(err, domainerrors.ErrInvalidTransition):
		return http.StatusConflict, "ERR_CONFLICT"
	case errors.Is(err, domainerrors.ErrInvalidCredentials), errors.Is(err, domainerrors.ErrTokenExpired), errors.Is(err, domainerrors.ErrUnauthorized):
		return http.StatusUnauthorized, "ERR_UNAUTHORIZED"
	case errors.Is(err, domainerrors.ErrForbidden):
		return http.StatusForbidden, "ERR_FORBIDDEN"
	case errors.Is(err, domainerrors.ErrInvalidInput), errors.Is(err, domainerrors.ErrBadRequest), errors.Is(err, domainerrors.ErrUnknownTrashType):
		return http.StatusBadRequest, "ERR_BAD_REQUEST"
	case errors.Is(err, domainerrors.ErrNoActiveRate):
		return http.StatusUnprocessableEntity, "ERR_CONFIGURATION"
	case errors.Is(err, domainerrors.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity, "ERR_INSUFFICIENT_FUNDS"
	case errors.Is(err, domainerrors.ErrWalletNotFound):
		return http.StatusNotFound, "ERR_NOT_FOUND"
	default:
		return http.StatusInternalServerError, "ERR_INTERNAL"
	}
}
