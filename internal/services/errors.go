package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mrlokans/bookshelf/internal/pagination"
)

// Error codes carried by AppError. They are part of the API contract.
const (
	CodeBookNotFound         = "BOOK_NOT_FOUND"
	CodeReviewNotFound       = "REVIEW_NOT_FOUND"
	CodeUserNotFound         = "USER_NOT_FOUND"
	CodeLikeNotFound         = "LIKE_NOT_FOUND"
	CodeDuplicateEmail       = "DUPLICATE_EMAIL"
	CodeDuplicateReview      = "DUPLICATE_REVIEW"
	CodeDuplicateLike        = "DUPLICATE_LIKE"
	CodeDuplicateLibraryItem = "DUPLICATE_LIBRARY_ITEM"
	CodeForbidden            = "FORBIDDEN"
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeTooManyAttempts      = "TOO_MANY_ATTEMPTS"
	CodeInternal             = "INTERNAL_ERROR"
)

// AppError is a domain failure that maps onto an HTTP status and a stable code.
type AppError struct {
	Code    string
	Status  int
	Message string
	Details map[string]any
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newAppError(status int, code, message string, details map[string]any) *AppError {
	return &AppError{Code: code, Status: status, Message: message, Details: details}
}

func ErrBookNotFound(bookID uint) *AppError {
	return newAppError(http.StatusNotFound, CodeBookNotFound, "book not found", map[string]any{"book_id": bookID})
}

func ErrReviewNotFound(reviewID uint) *AppError {
	return newAppError(http.StatusNotFound, CodeReviewNotFound, "review not found", map[string]any{"review_id": reviewID})
}

func ErrUserNotFound(userID uint) *AppError {
	return newAppError(http.StatusNotFound, CodeUserNotFound, "user not found", map[string]any{"user_id": userID})
}

func ErrLikeNotFound(reviewID uint) *AppError {
	return newAppError(http.StatusNotFound, CodeLikeNotFound, "like not found", map[string]any{"review_id": reviewID})
}

func ErrDuplicateEmail(email string) *AppError {
	return newAppError(http.StatusConflict, CodeDuplicateEmail, "email is already registered", map[string]any{"email": email})
}

func ErrDuplicateReview(bookID uint) *AppError {
	return newAppError(http.StatusConflict, CodeDuplicateReview, "you have already reviewed this book", map[string]any{"book_id": bookID})
}

func ErrDuplicateLike(reviewID uint) *AppError {
	return newAppError(http.StatusConflict, CodeDuplicateLike, "you have already liked this review", map[string]any{"review_id": reviewID})
}

func ErrDuplicateLibraryItem(bookID uint) *AppError {
	return newAppError(http.StatusConflict, CodeDuplicateLibraryItem, "book is already in your library", map[string]any{"book_id": bookID})
}

// ErrForbidden reports an ownership violation on the named resource.
func ErrForbidden(resource string, id uint) *AppError {
	return newAppError(http.StatusForbidden, CodeForbidden, "you do not own this "+resource, map[string]any{resource + "_id": id})
}

// ErrInvalidRequest reports a failed input validation. field names the
// offending input.
func ErrInvalidRequest(field, message string) *AppError {
	return newAppError(http.StatusBadRequest, CodeInvalidRequest, message, map[string]any{"field": field})
}

// invalidParam converts a paging validation failure, naming the parameter
// that was rejected.
func invalidParam(err error) *AppError {
	var paramErr *pagination.ParamError
	if errors.As(err, &paramErr) {
		return ErrInvalidRequest(paramErr.Field, paramErr.Message)
	}
	return ErrInvalidRequest("page", err.Error())
}

func ErrUnauthorized(message string) *AppError {
	return newAppError(http.StatusUnauthorized, CodeUnauthorized, message, map[string]any{})
}

func ErrInvalidCredentials(email string) *AppError {
	return newAppError(http.StatusUnauthorized, CodeInvalidCredentials, "invalid email or password", map[string]any{"email": email})
}

func ErrTooManyAttempts(email string, retryAfterSeconds int) *AppError {
	return newAppError(http.StatusTooManyRequests, CodeTooManyAttempts, "too many failed login attempts", map[string]any{
		"email":       email,
		"retry_after": retryAfterSeconds,
	})
}
