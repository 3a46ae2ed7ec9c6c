// README: Collaborator error taxonomy and classification of SDK errors.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sweetspot/internal/modules/itinerary"
)

var (
	ErrCredentialInvalid  = errors.New("invalid credential")
	ErrRateLimited        = errors.New("rate limited")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrNetwork            = errors.New("network error")
	ErrUnknownTransport   = errors.New("unknown transport error")
	ErrImagesDisabled     = errors.New("image generation disabled")

	// Both count as the model returning nothing.
	ErrBlocked      = fmt.Errorf("%w: blocked by safety filters", itinerary.ErrEmptyResponse)
	ErrNoCandidates = fmt.Errorf("%w: no candidates", itinerary.ErrEmptyResponse)
)

// Retryable reports whether another attempt could succeed.
func Retryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrServiceUnavailable) || errors.Is(err, ErrNetwork)
}

// classifyError maps an SDK error onto the taxonomy. Context cancellation is
// returned untouched so callers can tell a dropped client from a failure.
func classifyError(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	var ae *apierror.APIError
	if errors.As(err, &ae) && ae.HTTPCode() > 0 {
		return classifyHTTP(ae.HTTPCode(), ae.Error(), err)
	}
	var ge *googleapi.Error
	if errors.As(err, &ge) {
		return classifyHTTP(ge.Code, ge.Message, err)
	}
	if st, ok := status.FromError(err); ok {
		return classifyGRPC(st.Code(), st.Message(), err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return fmt.Errorf("%w: %v", ErrUnknownTransport, err)
}

func classifyHTTP(code int, msg string, err error) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: %v", ErrCredentialInvalid, err)
	case code == http.StatusBadRequest && mentionsAPIKey(msg):
		return fmt.Errorf("%w: %v", ErrCredentialInvalid, err)
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownTransport, err)
	}
}

func classifyGRPC(code codes.Code, msg string, err error) error {
	switch code {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %v", ErrCredentialInvalid, err)
	case codes.InvalidArgument:
		if mentionsAPIKey(msg) {
			return fmt.Errorf("%w: %v", ErrCredentialInvalid, err)
		}
	case codes.ResourceExhausted:
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case codes.Unavailable, codes.Internal, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	return fmt.Errorf("%w: %v", ErrUnknownTransport, err)
}

func mentionsAPIKey(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "api key") || strings.Contains(m, "api_key")
}
