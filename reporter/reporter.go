// Package reporter contains the types used for reporting diagnostics
// produced by any stage of the Incan compile pipeline: lexing, parsing,
// module resolution, typechecking, lowering, emission, and the final
// build step. It contains error types as well as interfaces for reporting
// and handling them.
//
// The compiler is single-threaded per invocation (see the root package),
// so unlike a library meant for concurrent use, Handler does not need its
// own locking: exactly one goroutine ever touches a given Handler.
package reporter

import (
	"github.com/dannys-code-corner/incan/ast"
)

// ErrorReporter is responsible for reporting the given error. If the reporter
// returns a non-nil error, the compile aborts with that error. If the
// reporter returns nil, the compile continues, allowing later passes to
// surface additional diagnostics.
type ErrorReporter func(err ErrorWithPos) error

// WarningReporter is responsible for reporting the given warning. Warnings
// never abort a compile.
type WarningReporter func(ErrorWithPos)

// Reporter is a type that handles reporting both errors and warnings.
type Reporter interface {
	// Error is called when the given error is encountered and needs to be
	// reported to the calling program. If this function returns non-nil
	// then the compile aborts immediately with the given error. If it
	// returns nil, the compile continues, reporting more errors as they
	// are encountered. If the reporter never returns non-nil, the compile
	// eventually fails with ErrInvalidSource.
	Error(ErrorWithPos) error
	// Warning is called when the given warning is encountered. A warning
	// never aborts the compile.
	Warning(ErrorWithPos)
}

// NewReporter creates a new reporter that invokes the given functions on error
// or warning.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPos) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithPos) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler is used by every compiler pass for handling errors and warnings.
// A Handler accumulates whether any error has been reported and the most
// recent abort decision from its reporter; it is not safe for concurrent
// use, which is never required since a compile runs on a single goroutine.
type Handler struct {
	reporter Reporter

	errsReported bool
	err          error
}

// NewHandler creates a new Handler that reports errors and warnings using the
// given reporter.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

// HandleErrorf handles an uncategorized error with the given source position,
// creating the error using the given message format and arguments.
//
// If the handler has already aborted (by returning a non-nil error from a
// call to HandleError, HandleErrorf, or HandleDiagnostic), that same error is
// returned and the given error is not reported.
func (h *Handler) HandleErrorf(pos ast.SourcePos, format string, args ...interface{}) error {
	if h.err != nil {
		return h.err
	}
	h.errsReported = true
	err := h.reporter.Error(Errorf(pos, format, args...))
	h.err = err
	return err
}

// HandleError handles the given error. If the given err is an ErrorWithPos, it
// is reported, and this function returns the error returned by the reporter. If
// the given err is NOT an ErrorWithPos, the current operation will abort
// immediately.
//
// If the handler has already aborted, that same error is returned and the
// given error is not reported.
func (h *Handler) HandleError(err error) error {
	if h.err != nil {
		return h.err
	}
	if ewp, ok := err.(ErrorWithPos); ok {
		h.errsReported = true
		err = h.reporter.Error(ewp)
	}
	h.err = err
	return err
}

// HandleDiagnostic is like HandleError but for diagnostics built with
// category, secondary locations, and hints (see Diagnostic).
func (h *Handler) HandleDiagnostic(cat Category, pos ast.SourcePos, err error, secondary []Related, hints ...string) error {
	return h.HandleError(Diagnostic(cat, pos, err, secondary, hints...))
}

// HandleWarning handles a warning with the given source position. This will
// delegate to the handler's configured reporter.
func (h *Handler) HandleWarning(pos ast.SourcePos, err error) {
	h.reporter.Warning(errorWithSourcePos{pos: pos, underlying: err})
}

// Error returns the handler result. If any errors have been reported then this
// returns a non-nil error. If the reporter never returned a non-nil error then
// ErrInvalidSource is returned. Otherwise, this returns the error returned by
// the handler's reporter (the same value returned by ReporterError).
func (h *Handler) Error() error {
	if h.errsReported && h.err == nil {
		return ErrInvalidSource
	}
	return h.err
}

// ReporterError returns the error returned by the handler's reporter. If
// the reporter has either not been invoked (no errors handled) or has not
// returned any non-nil value, then this returns nil.
func (h *Handler) ReporterError() error {
	return h.err
}
