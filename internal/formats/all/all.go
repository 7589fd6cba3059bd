// Package all registers every embedded format handler. Import it for side
// effects wherever the full parser registry is needed.
package all

import (
	// Embedded format handlers register themselves at init time.
	_ "github.com/FocuswithJustin/VerseLoom/internal/formats/csv"
	_ "github.com/FocuswithJustin/VerseLoom/internal/formats/json"
	_ "github.com/FocuswithJustin/VerseLoom/internal/formats/txt"
	_ "github.com/FocuswithJustin/VerseLoom/internal/formats/xml"
)
