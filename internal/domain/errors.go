package domain

import "errors"

var (
	// ErrInputMissing means neither a file nor pasted text was supplied.
	ErrInputMissing = errors.New("no file or text provided")

	// ErrFileTooLarge means the upload exceeds the configured size ceiling.
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")

	// ErrUnsupportedFormat means the file could not be classified or read as text.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrConfigurationMissing means no API credential is configured for the
	// generation provider.
	ErrConfigurationMissing = errors.New("generation provider credential is not configured")

	// ErrContentBlocked means the provider's safety filter withheld the output.
	ErrContentBlocked = errors.New("response withheld by content safety filter")

	// ErrEmptyResponse means the provider returned no text for an unspecified reason.
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrMalformedResponse means the model returned text that does not satisfy
	// the response contract.
	ErrMalformedResponse = errors.New("response does not match the expected structure")

	// ErrTransportFailure means the generation call itself could not complete.
	ErrTransportFailure = errors.New("generation call failed")

	// ErrAnalysisInFlight means another analysis attempt is still running.
	ErrAnalysisInFlight = errors.New("an analysis is already in progress")
)
