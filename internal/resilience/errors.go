package resilience

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// ExhaustedError reports that every retry attempt failed. It wraps the error
// from the final attempt.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("exhausted %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// IsExhausted reports whether err (or any error in its chain) is an
// ExhaustedError.
func IsExhausted(err error) bool {
	var ee *ExhaustedError
	return errors.As(err, &ee)
}

// IsConnectionError reports whether err is a connection-level failure that is
// safe to retry: timeouts, resets, refused connections, DNS failures. HTTP
// status errors and response parsing errors are deliberately excluded; those
// are surfaced to the caller on the first attempt.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	// String-based heuristics for wrapped errors from the HTTP transport.
	msg := strings.ToLower(err.Error())
	connectionPatterns := []string{
		"connection reset by peer",
		"connection refused",
		"broken pipe",
		"temporary failure in name resolution",
		"no such host",
		"tls handshake timeout",
		"i/o timeout",
		"server closed idle connection",
		"transport connection broken",
		"eof",
	}
	for _, p := range connectionPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}
