package report

import (
	"fmt"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// checkedStateAliases is the fixed fallback list tried when a checkbox
// declares no appearance catalog. Nothing outside this list is ever
// used as a checked state.
var checkedStateAliases = []string{"Yes", "On", "1"}

// checkedState resolves the name of a checkbox's checked appearance
// state. The field's own /AP /N subdictionary is authoritative; the
// alias list is a fallback for fields that declare no appearances.
func (c *Catalog) checkedState(f *Field) string {
	for _, dict := range c.appearanceDicts(f) {
		keys := make([]string, 0, len(dict))
		for key := range dict {
			if key != "Off" {
				keys = append(keys, key)
			}
		}
		if len(keys) == 0 {
			continue
		}
		sort.Strings(keys)
		return keys[0]
	}
	return checkedStateAliases[0]
}

// appearanceDicts collects the normal-appearance subdictionaries of a
// field, looking at the field dict itself and at its widget kids.
func (c *Catalog) appearanceDicts(f *Field) []types.Dict {
	var dicts []types.Dict

	candidates := []types.Dict{f.dict}
	if kidsObj, found := f.dict.Find("Kids"); found {
		if kidsArray, err := c.ctx.DereferenceArray(kidsObj); err == nil {
			for _, kidRef := range kidsArray {
				if kidDict, err := c.ctx.DereferenceDict(kidRef); err == nil && kidDict != nil {
					candidates = append(candidates, kidDict)
				}
			}
		}
	}

	for _, cand := range candidates {
		apObj, found := cand.Find("AP")
		if !found {
			continue
		}
		apDict, err := c.ctx.DereferenceDict(apObj)
		if err != nil || apDict == nil {
			continue
		}
		nObj, found := apDict.Find("N")
		if !found {
			continue
		}
		nDict, err := c.ctx.DereferenceDict(nObj)
		if err != nil || nDict == nil {
			continue
		}
		dicts = append(dicts, nDict)
	}

	return dicts
}

// RepairAppearances forces filled values to render in all viewers:
// the AcroForm is marked NeedAppearances so viewers regenerate
// appearance streams on open, and every filled button field's widgets
// get their appearance state pointed at the written value.
func (c *Catalog) RepairAppearances() {
	if c.acroForm != nil {
		c.acroForm["NeedAppearances"] = types.Boolean(true)
	}

	for _, f := range c.filled {
		valueObj, found := f.dict.Find("V")
		if !found {
			continue
		}
		state, ok := valueObj.(types.Name)
		if !ok {
			// Text fields render via NeedAppearances.
			continue
		}
		c.setWidgetStates(f, state)
	}
}

// setWidgetStates propagates an appearance state onto the field's
// widget annotations. A malformed widget is skipped, not fatal.
func (c *Catalog) setWidgetStates(f *Field, state types.Name) {
	f.dict["AS"] = state

	kidsObj, found := f.dict.Find("Kids")
	if !found {
		return
	}
	kidsArray, err := c.ctx.DereferenceArray(kidsObj)
	if err != nil {
		return
	}
	for _, kidRef := range kidsArray {
		kidDict, err := c.ctx.DereferenceDict(kidRef)
		if err != nil || kidDict == nil {
			continue
		}
		kidDict["AS"] = state
	}
}

// interactiveKeys are the widget entries stripped when flattening.
var interactiveKeys = []string{"AA", "A", "BS", "H", "MK", "TI", "TM", "TU"}

// FlattenFields strips interactivity from every filled field and
// removes the AcroForm dictionary, turning the filled content into
// permanent page content. This is irreversible.
func (c *Catalog) FlattenFields() {
	for _, f := range c.filled {
		c.flattenField(f.dict)
		if kidsObj, found := f.dict.Find("Kids"); found {
			if kidsArray, err := c.ctx.DereferenceArray(kidsObj); err == nil {
				for _, kidRef := range kidsArray {
					if kidDict, err := c.ctx.DereferenceDict(kidRef); err == nil && kidDict != nil {
						c.flattenField(kidDict)
					}
				}
			}
		}
	}

	if rootDict, err := c.ctx.Catalog(); err == nil {
		delete(rootDict, "AcroForm")
	}
}

// flattenField makes a single field or widget dict read-only,
// printable and non-interactive.
func (c *Catalog) flattenField(dict types.Dict) {
	for _, key := range interactiveKeys {
		delete(dict, key)
	}
	dict["Ff"] = types.Integer(1) // read-only
	dict["F"] = types.Integer(4)  // print
}

// Write emits the mutated document to the output path.
func (c *Catalog) Write(path string) error {
	if err := api.WriteContextFile(c.ctx, path); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
