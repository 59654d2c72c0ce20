package settings

import "sort"

// Canonical model aliases. Callers may request models by alias or by the
// vendor identifier the alias maps to.
const (
	AliasOpus   = "opus"
	AliasSonnet = "sonnet"
	AliasHaiku  = "haiku"
)

// Default vendor identifiers for each alias. Opus and sonnet intentionally
// share a SKU: the GLM endpoint serves both tiers from the same model.
const (
	defaultOpusModel   = "glm-4.6"
	defaultSonnetModel = "glm-4.6"
	defaultHaikuModel  = "glm-4.5-air"
)

// AliasTable maps symbolic model aliases to vendor model identifiers.
// Iteration order is stable: built-in aliases first in canonical order,
// then user-supplied aliases. Overriding an existing alias keeps its
// position.
type AliasTable struct {
	order []string
	skus  map[string]string
}

// DefaultAliasTable returns the built-in alias table.
func DefaultAliasTable() *AliasTable {
	return &AliasTable{
		order: []string{AliasOpus, AliasSonnet, AliasHaiku},
		skus: map[string]string{
			AliasOpus:   defaultOpusModel,
			AliasSonnet: defaultSonnetModel,
			AliasHaiku:  defaultHaikuModel,
		},
	}
}

// WithOverrides returns a copy of the table with the given alias-to-SKU
// overrides applied. Existing aliases keep their iteration position; new
// aliases are appended in sorted name order so layering is deterministic.
func (t *AliasTable) WithOverrides(overrides map[string]string) *AliasTable {
	out := &AliasTable{
		order: append([]string(nil), t.order...),
		skus:  make(map[string]string, len(t.skus)+len(overrides)),
	}
	for alias, sku := range t.skus {
		out.skus[alias] = sku
	}

	var added []string
	for alias, sku := range overrides {
		if alias == "" || sku == "" {
			continue
		}
		if _, ok := out.skus[alias]; !ok {
			added = append(added, alias)
		}
		out.skus[alias] = sku
	}
	sort.Strings(added)
	out.order = append(out.order, added...)
	return out
}

// Aliases returns the alias names in table order.
func (t *AliasTable) Aliases() []string {
	return append([]string(nil), t.order...)
}

// SKU returns the vendor identifier for an alias.
func (t *AliasTable) SKU(alias string) (string, bool) {
	sku, ok := t.skus[alias]
	return sku, ok
}

// ResolveAlias maps a requested model identifier to an alias. An identifier
// that is already an alias is returned unchanged, so callers can pass either
// form. Otherwise the table is scanned in order for an alias whose vendor
// identifier matches; when two aliases map to the same SKU the first one in
// table order wins.
func (t *AliasTable) ResolveAlias(requested string) (string, error) {
	if _, ok := t.skus[requested]; ok {
		return requested, nil
	}
	for _, alias := range t.order {
		if t.skus[alias] == requested {
			return alias, nil
		}
	}
	return "", &UnsupportedModelError{Requested: requested, Known: t.Aliases()}
}

// ResolveSKU maps a requested model identifier to the vendor identifier the
// provider should be constructed with.
func (t *AliasTable) ResolveSKU(requested string) (string, error) {
	alias, err := t.ResolveAlias(requested)
	if err != nil {
		return "", err
	}
	return t.skus[alias], nil
}
