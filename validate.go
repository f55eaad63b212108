package moodle2pdf

import (
	"bytes"
	"errors"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// validatePDF parses pdf with pdfcpu and returns its page count.
// Each call gets its own configuration since pdfcpu records the running
// command on it.
func validatePDF(pdf []byte) (int, error) {
	conf := model.NewDefaultConfiguration()

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdf), conf)
	if err != nil {
		return 0, err
	}
	if ctx.PageCount < 1 {
		return 0, errors.New("document has no pages")
	}
	return ctx.PageCount, nil
}
