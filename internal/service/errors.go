package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lightsongjs/book-translator/pkg/log"
)

type ErrorType int

const (
	ErrFileNotFound ErrorType = iota
	ErrFileRead
	ErrFileWrite
	ErrParse
	ErrValidation
	ErrConfig
	ErrUnknown
)

// WorkflowError carries a classified error through the translation
// workflow so the CLI can print actionable advice instead of a raw
// error chain.
type WorkflowError struct {
	Type    ErrorType
	Message string
	Context map[string]any
	Cause   error
}

func NewError(errorType ErrorType, message string) *WorkflowError {
	return &WorkflowError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]any),
	}
}

func NewErrorWithCause(errorType ErrorType, message string, cause error) *WorkflowError {
	return &WorkflowError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]any),
		Cause:   cause,
	}
}

func (e *WorkflowError) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s] %s", e.Type.String(), e.Message))

	if len(e.Context) > 0 {
		var ctxParts []string
		for k, v := range e.Context {
			ctxParts = append(ctxParts, fmt.Sprintf("%s=%v", k, v))
		}
		parts = append(parts, fmt.Sprintf("context: %s", strings.Join(ctxParts, ", ")))
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause: %v", e.Cause))
	}

	return strings.Join(parts, " | ")
}

func (e *WorkflowError) Unwrap() error {
	return e.Cause
}

func (e *WorkflowError) WithContext(key string, value any) *WorkflowError {
	e.Context[key] = value
	return e
}

func (t ErrorType) String() string {
	switch t {
	case ErrFileNotFound:
		return "FileNotFound"
	case ErrFileRead:
		return "FileRead"
	case ErrFileWrite:
		return "FileWrite"
	case ErrParse:
		return "Parse"
	case ErrValidation:
		return "Validation"
	case ErrConfig:
		return "Config"
	default:
		return "Unknown"
	}
}

type ErrorHandler interface {
	Handle(err error) bool
	GetAdvice(err *WorkflowError) string
}

type DefaultErrorHandler struct{}

func NewDefaultErrorHandler() ErrorHandler {
	return &DefaultErrorHandler{}
}

func (h *DefaultErrorHandler) Handle(err error) bool {
	wfErr, ok := err.(*WorkflowError)
	if !ok {
		log.Error("Unknown Error: %v", err)
		return false
	}

	advice := h.GetAdvice(wfErr)
	log.Error("Error Detail: %v\n advice: %s", err, advice)

	return true
}

// GetAdvice returns error handling advice
func (h *DefaultErrorHandler) GetAdvice(err *WorkflowError) string {
	switch err.Type {
	case ErrFileNotFound:
		return "Check that the project directory is initialized and the chapter or segment files exist; run extract and segment first"
	case ErrFileRead:
		return "Check file permissions under the project directory and verify the file is not corrupted"
	case ErrFileWrite:
		return "Ensure the stage directories exist and have write permissions"
	case ErrParse:
		return "Verify the input is a valid EPUB archive and the tracking log is well-formed JSON"
	case ErrValidation:
		return "Review the reported chapters; translate missing segments or fix flagged content, then re-run validate"
	case ErrConfig:
		return "Check configuration files or BOOKTRANS_ environment variables; segmentation bounds must be coherent"
	default:
		return "Review detailed error information and check the project directory state"
	}
}

func IsErrorType(err error, errorType ErrorType) bool {
	var wfErr *WorkflowError
	if errors.As(err, &wfErr) {
		return wfErr.Type == errorType
	}
	return false
}

func WrapError(err error, errorType ErrorType, message string) *WorkflowError {
	return NewErrorWithCause(errorType, message, err)
}
