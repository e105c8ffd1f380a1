package report

import (
	"fmt"
	"log"

	"github.com/homescope/trec-report/internal/inspection"
)

// Template field names for the scalar header values.
const (
	fieldClientName      = "Name of Client"
	fieldInspectionDate  = "Date of Inspection"
	fieldPropertyAddress = "Address of Inspected Property"
	fieldInspectorName   = "Name of Inspector"
)

// FieldStore is the slice of the field catalog the fill stages write
// through. Catalog implements it; tests substitute an in-memory store.
type FieldStore interface {
	Has(name string) bool
	SetText(name, value string) error
	Check(name string) error
	TextFieldNames() []string
}

// Populator fills a template document from an inspection record. The
// zero value is not usable; set TemplatePath.
type Populator struct {
	TemplatePath string

	// Flatten strips interactivity from the output so filled content
	// becomes permanent page content. Irreversible, off by default.
	Flatten bool
}

// Result summarizes one generation run.
type Result struct {
	OutputPath    string
	FieldCount    int
	PageCount     int
	ScalarFields  int
	Checkboxes    int
	CommentFields int
	Flattened     bool
}

// Generate runs the fill pipeline: load the template, fill scalars,
// distribute the status matrix, lay out narrative comments, repair
// appearances, optionally flatten, and write the output document. Any
// terminal error aborts with no output written; per-field problems
// inside a stage are logged and skipped.
func (p *Populator) Generate(rec *inspection.Record, outputPath string) (*Result, error) {
	cat, err := OpenTemplate(p.TemplatePath)
	if err != nil {
		return nil, err
	}
	defer cat.Close()

	res := &Result{
		OutputPath: outputPath,
		FieldCount: cat.Len(),
		PageCount:  cat.PageCount(),
	}

	res.ScalarFields = fillScalars(cat, rec)
	res.Checkboxes = fillMatrix(cat, rec.Sections())
	res.CommentFields = fillNarrative(cat, rec.Sections())

	cat.RepairAppearances()
	if p.Flatten {
		cat.FlattenFields()
		res.Flattened = true
	}

	if err := cat.Write(outputPath); err != nil {
		return nil, fmt.Errorf("report generation failed: %w", err)
	}

	if err := VerifyOutput(outputPath, res.PageCount); err != nil {
		log.Printf("report: output verification: %v", err)
	}

	return res, nil
}

// fillScalars writes the header values, skipping fields the template
// does not expose and values the record does not carry.
func fillScalars(cat FieldStore, rec *inspection.Record) int {
	scalars := []struct {
		name  string
		value string
	}{
		{fieldClientName, rec.ClientInfo().Name},
		{fieldInspectionDate, rec.InspectionSchedule().InspectionDate()},
		{fieldPropertyAddress, rec.PropertyInfo().FullAddress},
		{fieldInspectorName, rec.InspectorInfo().Name},
	}

	written := 0
	for _, s := range scalars {
		if s.value == "" || !cat.Has(s.name) {
			continue
		}
		if err := cat.SetText(s.name, s.value); err != nil {
			log.Printf("scalar: could not fill %q: %v", s.name, err)
			continue
		}
		written++
	}
	return written
}
