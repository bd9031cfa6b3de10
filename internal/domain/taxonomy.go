package domain

// StatusTaxonomy is a read-only snapshot of the status configuration
type StatusTaxonomy struct {
	byCode map[int64]StatusDefinition
	pickup *StatusDefinition
	last   *StatusDefinition
}

// NewStatusTaxonomy indexes definitions by ERP code. The first definition seen
// wins for a code and for each boundary position.
func NewStatusTaxonomy(defs []StatusDefinition) StatusTaxonomy {
	t := StatusTaxonomy{byCode: make(map[int64]StatusDefinition, len(defs))}
	for i := range defs {
		def := defs[i]
		if def.Code != 0 {
			if _, ok := t.byCode[def.Code]; !ok {
				t.byCode[def.Code] = def
			}
		}
		switch def.Position {
		case PositionPickup:
			if t.pickup == nil {
				t.pickup = &def
			}
		case PositionLast:
			if t.last == nil {
				t.last = &def
			}
		}
	}
	return t
}

// Lookup resolves an ERP status code
func (t StatusTaxonomy) Lookup(code int64) (StatusDefinition, bool) {
	def, ok := t.byCode[code]
	return def, ok
}

// Pickup returns the pickup boundary definition, if configured
func (t StatusTaxonomy) Pickup() (StatusDefinition, bool) {
	if t.pickup == nil {
		return StatusDefinition{}, false
	}
	return *t.pickup, true
}

// Last returns the last boundary definition, if configured
func (t StatusTaxonomy) Last() (StatusDefinition, bool) {
	if t.last == nil {
		return StatusDefinition{}, false
	}
	return *t.last, true
}

// Len returns the number of mapped ERP codes
func (t StatusTaxonomy) Len() int {
	return len(t.byCode)
}
