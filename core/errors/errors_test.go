package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with ID",
			err:      &NotFoundError{Resource: "translation", ID: "KJV"},
			wantMsg:  "translation not found: KJV",
			wantBase: ErrNotFound,
		},
		{
			name:     "without ID",
			err:      &NotFoundError{Resource: "config"},
			wantMsg:  "config not found",
			wantBase: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	// Test with underlying error separately
	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("disk error")
		err := &NotFoundError{Resource: "file", ID: "kjv.xml", Err: underlyingErr}
		if got := err.Error(); got != "file not found: kjv.xml" {
			t.Errorf("Error() = %q, want %q", got, "file not found: kjv.xml")
		}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with field",
			err:      &ValidationError{Field: "chapter", Message: "must be positive"},
			wantMsg:  "validation failed for chapter: must be positive",
			wantBase: ErrInvalidInput,
		},
		{
			name:     "without field",
			err:      &ValidationError{Message: "invalid format"},
			wantMsg:  "validation failed: invalid format",
			wantBase: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}
}

func TestIOError(t *testing.T) {
	baseErr := fmt.Errorf("permission denied")
	tests := []struct {
		name    string
		err     *IOError
		wantMsg string
	}{
		{
			name:    "with path",
			err:     &IOError{Operation: "read", Path: "/data/raw/kjv.xml", Err: baseErr},
			wantMsg: "failed to read /data/raw/kjv.xml: permission denied",
		},
		{
			name:    "without path",
			err:     &IOError{Operation: "write", Err: baseErr},
			wantMsg: "failed to write: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, baseErr) {
				t.Errorf("Unwrap() = %v, want %v", got, baseErr)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with source",
			err:      &ParseError{Format: "JSON", Source: "KJV", Message: "unexpected EOF"},
			wantMsg:  "failed to parse JSON for KJV: unexpected EOF",
			wantBase: ErrInvalidInput,
		},
		{
			name:     "without source",
			err:      &ParseError{Format: "XML", Message: "malformed tag"},
			wantMsg:  "failed to parse XML: malformed tag",
			wantBase: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	// Test with underlying error separately
	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("json: unexpected token")
		err := &ParseError{Format: "JSON", Source: "NIV", Message: "invalid syntax", Err: underlyingErr}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestUnsupportedError(t *testing.T) {
	tests := []struct {
		name     string
		err      *UnsupportedError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with reason",
			err:      &UnsupportedError{Feature: "file format", Reason: "no parser for .docx"},
			wantMsg:  "unsupported file format: no parser for .docx",
			wantBase: ErrUnsupported,
		},
		{
			name:     "without reason",
			err:      &UnsupportedError{Feature: "format"},
			wantMsg:  "unsupported format",
			wantBase: ErrUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}
}

func TestHelperFunctions(t *testing.T) {
	t.Run("NewNotFound", func(t *testing.T) {
		err := NewNotFound("source", "matthew_henry")
		if err.Resource != "source" || err.ID != "matthew_henry" {
			t.Errorf("NewNotFound() = %+v, want Resource=source, ID=matthew_henry", err)
		}
	})

	t.Run("NewValidation", func(t *testing.T) {
		err := NewValidation("verse", "must be positive")
		if err.Field != "verse" || err.Message != "must be positive" {
			t.Errorf("NewValidation() = %+v, unexpected values", err)
		}
	})

	t.Run("NewIO", func(t *testing.T) {
		baseErr := fmt.Errorf("disk full")
		err := NewIO("write", "/tmp/out.json", baseErr)
		if err.Operation != "write" || err.Path != "/tmp/out.json" || err.Err != baseErr {
			t.Errorf("NewIO() = %+v, unexpected values", err)
		}
	})

	t.Run("NewParse", func(t *testing.T) {
		err := NewParse("CSV", "barnes", "wrong column count")
		if err.Format != "CSV" || err.Source != "barnes" || err.Message != "wrong column count" {
			t.Errorf("NewParse() = %+v, unexpected values", err)
		}
	})

	t.Run("NewUnsupported", func(t *testing.T) {
		err := NewUnsupported("extension", ".pdf has no handler")
		if err.Feature != "extension" || err.Reason != ".pdf has no handler" {
			t.Errorf("NewUnsupported() = %+v, unexpected values", err)
		}
	})
}

func TestWrap(t *testing.T) {
	t.Run("wraps error", func(t *testing.T) {
		baseErr := fmt.Errorf("base error")
		wrapped := Wrap(baseErr, "context message")
		if wrapped == nil {
			t.Fatal("Wrap() returned nil")
		}
		if !errors.Is(wrapped, baseErr) {
			t.Errorf("Wrap() error does not unwrap to base error")
		}
		wantMsg := "context message: base error"
		if wrapped.Error() != wantMsg {
			t.Errorf("Wrap() = %q, want %q", wrapped.Error(), wantMsg)
		}
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		if got := Wrap(nil, "context"); got != nil {
			t.Errorf("Wrap(nil) = %v, want nil", got)
		}
	})
}

func TestWrapf(t *testing.T) {
	t.Run("wraps error with formatting", func(t *testing.T) {
		baseErr := fmt.Errorf("base error")
		wrapped := Wrapf(baseErr, "failed to process %s", "kjv.xml")
		if wrapped == nil {
			t.Fatal("Wrapf() returned nil")
		}
		if !errors.Is(wrapped, baseErr) {
			t.Errorf("Wrapf() error does not unwrap to base error")
		}
		wantMsg := "failed to process kjv.xml: base error"
		if wrapped.Error() != wantMsg {
			t.Errorf("Wrapf() = %q, want %q", wrapped.Error(), wantMsg)
		}
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		if got := Wrapf(nil, "context %s", "test"); got != nil {
			t.Errorf("Wrapf(nil) = %v, want nil", got)
		}
	})
}

func TestIs(t *testing.T) {
	err := &NotFoundError{Resource: "test"}
	if !Is(err, ErrNotFound) {
		t.Error("Is() failed to match NotFoundError to ErrNotFound")
	}
}

func TestAs(t *testing.T) {
	err := &NotFoundError{Resource: "test", ID: "123"}
	var nfErr *NotFoundError
	if !As(err, &nfErr) {
		t.Error("As() failed to match NotFoundError")
	}
	if nfErr.ID != "123" {
		t.Errorf("As() nfErr.ID = %q, want %q", nfErr.ID, "123")
	}
}
