package mapping

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/eslsoft/studyhub/internal/entity"
)

var (
	// ErrUnauthenticated is returned by transports when the caller identity is missing or malformed.
	ErrUnauthenticated = errors.New("missing or invalid user identity")
	// ErrMalformedRequest wraps payload, path and query decoding failures.
	ErrMalformedRequest = errors.New("malformed request")
)

const internalMessage = "internal server error"

// Code classifies err into a gRPC code. Unknown errors are Internal.
func Code(err error) codes.Code {
	switch {
	case err == nil:
		return codes.OK
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, entity.ErrInvalidUserID):
		return codes.Unauthenticated
	case errors.Is(err, entity.ErrDeckNotFound),
		errors.Is(err, entity.ErrFlashcardNotFound),
		errors.Is(err, entity.ErrDailyProgressNotFound),
		errors.Is(err, entity.ErrStudySessionNotFound):
		return codes.NotFound
	case errors.Is(err, entity.ErrDuplicateDailyProgress):
		return codes.AlreadyExists
	case errors.Is(err, ErrMalformedRequest),
		errors.Is(err, entity.ErrInvalidDeckID),
		errors.Is(err, entity.ErrInvalidDeck),
		errors.Is(err, entity.ErrInvalidDeckName),
		errors.Is(err, entity.ErrInvalidFlashcardID),
		errors.Is(err, entity.ErrInvalidFlashcard),
		errors.Is(err, entity.ErrInvalidFlashcardContent),
		errors.Is(err, entity.ErrInvalidQualityRating),
		errors.Is(err, entity.ErrInvalidResponseTime),
		errors.Is(err, entity.ErrInvalidReviewState),
		errors.Is(err, entity.ErrInvalidDailyProgress),
		errors.Is(err, entity.ErrInvalidStudySessionID),
		errors.Is(err, entity.ErrInvalidStudySession),
		errors.Is(err, entity.ErrInvalidPagination),
		errors.Is(err, entity.ErrInvalidFilter):
		return codes.InvalidArgument
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}

// Message is the client-facing text for err. Internal failures are not leaked.
func Message(err error) string {
	if Code(err) == codes.Internal {
		return internalMessage
	}
	return err.Error()
}

// ToStatus converts a domain error into a gRPC status error.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	return status.Error(Code(err), Message(err))
}

// HTTPStatus maps err onto the HTTP status used by the REST surface.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return runtime.HTTPStatusFromCode(Code(err))
}

// ToConnectError converts a domain error into a connect error with the equivalent code.
func ToConnectError(err error) error {
	if err == nil {
		return nil
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}
	return connect.NewError(connect.Code(Code(err)), errors.New(Message(err)))
}
