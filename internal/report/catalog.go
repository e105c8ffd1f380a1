package report

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// FieldKind classifies a form field in the template's field catalog.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldCheckbox FieldKind = "checkbox"
	FieldRadio    FieldKind = "radio"
	FieldButton   FieldKind = "button"
	FieldUnknown  FieldKind = "unknown"
)

// reservedTextFieldPrefix marks text fields that are not available for
// narrative comments.
const reservedTextFieldPrefix = "TextField"

// Field is one fillable field of the template. The underlying dict is
// the live pdfcpu object, so writes through SetText/Check mutate the
// document in place.
type Field struct {
	Name string
	Kind FieldKind
	dict types.Dict
}

// Catalog is the template document together with its enumerated field
// catalog. It tracks which fields were filled so the appearance repair
// pass can revisit exactly those.
type Catalog struct {
	ctx      *model.Context
	file     *os.File
	acroForm types.Dict
	fields   []*Field
	byName   map[string]*Field
	filled   []*Field
}

// OpenTemplate opens the template document and scans its field
// catalog. A missing file maps to ErrTemplateMissing; a template
// without any fillable fields maps to ErrNoFormFields.
func OpenTemplate(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateMissing, path)
		}
		return nil, fmt.Errorf("failed to open template %s: %w", path, err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	c := &Catalog{
		ctx:    ctx,
		file:   f,
		byName: make(map[string]*Field),
	}

	if err := c.scan(); err != nil {
		f.Close()
		return nil, err
	}

	if len(c.fields) == 0 {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrNoFormFields, path)
	}

	return c, nil
}

// Close releases the underlying template file.
func (c *Catalog) Close() error {
	return c.file.Close()
}

// Len returns the number of fillable fields in the catalog.
func (c *Catalog) Len() int {
	return len(c.fields)
}

// PageCount returns the template's page count.
func (c *Catalog) PageCount() int {
	return c.ctx.PageCount
}

// scan walks the AcroForm field tree and registers every terminal
// field under its fully qualified name.
func (c *Catalog) scan() error {
	rootDict, err := c.ctx.Catalog()
	if err != nil {
		return fmt.Errorf("failed to get catalog: %w", err)
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		return nil
	}

	acroFormDict, err := c.ctx.DereferenceDict(acroFormObj)
	if err != nil {
		return fmt.Errorf("failed to dereference AcroForm: %w", err)
	}
	if acroFormDict == nil {
		return nil
	}
	c.acroForm = acroFormDict

	fieldsObj, found := acroFormDict.Find("Fields")
	if !found {
		return nil
	}

	fieldsArray, err := c.ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return fmt.Errorf("failed to dereference Fields array: %w", err)
	}

	for i, fieldRef := range fieldsArray {
		if err := c.walkField(fieldRef, ""); err != nil {
			log.Printf("catalog: skipping field %d: %v", i, err)
		}
	}

	return nil
}

// walkField registers a field dict, recursing through Kids that are
// themselves named fields. Kids that are bare widget annotations leave
// the parent as the terminal field.
func (c *Catalog) walkField(obj types.Object, prefix string) error {
	fieldDict, err := c.ctx.DereferenceDict(obj)
	if err != nil {
		return fmt.Errorf("failed to dereference field: %w", err)
	}
	if fieldDict == nil {
		return nil
	}

	name := prefix
	if partial := c.partialName(fieldDict); partial != "" {
		if name != "" {
			name += "."
		}
		name += partial
	}

	terminal := true
	if kidsObj, found := fieldDict.Find("Kids"); found {
		if kidsArray, err := c.ctx.DereferenceArray(kidsObj); err == nil {
			for _, kidRef := range kidsArray {
				kidDict, err := c.ctx.DereferenceDict(kidRef)
				if err != nil || kidDict == nil {
					continue
				}
				if _, named := kidDict.Find("T"); named {
					terminal = false
					if err := c.walkField(kidRef, name); err != nil {
						log.Printf("catalog: skipping child of %q: %v", name, err)
					}
				}
			}
		}
	}

	if !terminal || name == "" {
		return nil
	}

	field := &Field{
		Name: name,
		Kind: c.fieldKind(fieldDict),
		dict: fieldDict,
	}
	c.fields = append(c.fields, field)
	if _, dup := c.byName[name]; !dup {
		c.byName[name] = field
	}
	return nil
}

// partialName extracts the field's T entry.
func (c *Catalog) partialName(fieldDict types.Dict) string {
	nameObj, found := fieldDict.Find("T")
	if !found {
		return ""
	}
	name, err := c.ctx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil)
	if err != nil {
		return ""
	}
	return name
}

// fieldKind determines the field kind from the FT entry, following
// Parent links for inherited types and button flags for the
// checkbox/radio/pushbutton split.
func (c *Catalog) fieldKind(fieldDict types.Dict) FieldKind {
	ftObj, found := fieldDict.Find("FT")
	if !found {
		if parentObj, found := fieldDict.Find("Parent"); found {
			if parentDict, err := c.ctx.DereferenceDict(parentObj); err == nil && parentDict != nil {
				return c.fieldKind(parentDict)
			}
		}
		return FieldUnknown
	}

	ftName, err := c.ctx.DereferenceName(ftObj, model.V10, nil)
	if err != nil {
		return FieldUnknown
	}

	switch ftName {
	case "Btn":
		if flagsObj, found := fieldDict.Find("Ff"); found {
			if flags, err := c.ctx.DereferenceInteger(flagsObj); err == nil && flags != nil {
				flagValue := *flags
				if (flagValue & (1 << 15)) != 0 { // Bit 16: Radio
					return FieldRadio
				} else if (flagValue & (1 << 16)) != 0 { // Bit 17: Pushbutton
					return FieldButton
				}
			}
		}
		return FieldCheckbox
	case "Tx":
		return FieldText
	default:
		return FieldUnknown
	}
}

// find resolves a field by exact name first, then by containment so
// that short names like "CheckBox1[3]" match fully qualified
// XFA-style names. Document order breaks ties.
func (c *Catalog) find(name string) *Field {
	if f, ok := c.byName[name]; ok {
		return f
	}
	for _, f := range c.fields {
		if strings.Contains(f.Name, name) {
			return f
		}
	}
	return nil
}

// Has reports whether the catalog contains the named field.
func (c *Catalog) Has(name string) bool {
	return c.find(name) != nil
}

// SetText writes a value into a text field's V entry. The appearance
// repair pass makes it render.
func (c *Catalog) SetText(name, value string) error {
	f := c.find(name)
	if f == nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	escaped, err := types.Escape(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for field %s: %w", name, err)
	}

	f.dict["V"] = types.StringLiteral(*escaped)
	c.filled = append(c.filled, f)
	return nil
}

// Check marks a checkbox field by pointing both its value and its
// appearance state at the field's checked state.
func (c *Catalog) Check(name string) error {
	f := c.find(name)
	if f == nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	state := c.checkedState(f)
	f.dict["V"] = types.Name(state)
	f.dict["AS"] = types.Name(state)
	c.filled = append(c.filled, f)
	return nil
}

// TextFieldNames returns, in document order, the names of text fields
// available for narrative comments: names containing "Text" except the
// reserved "TextField" subset.
func (c *Catalog) TextFieldNames() []string {
	var names []string
	for _, f := range c.fields {
		if !strings.Contains(f.Name, "Text") {
			continue
		}
		if strings.HasPrefix(lastSegment(f.Name), reservedTextFieldPrefix) {
			continue
		}
		names = append(names, f.Name)
	}
	return names
}

// lastSegment returns the final dotted segment of a qualified field
// name.
func lastSegment(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
