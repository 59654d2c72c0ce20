package llm

import "github.com/davetashner/glmbridge/internal/settings"

// ResolvingFactory wraps another Factory and rewrites the model identifier
// through the settings' alias table before forwarding. Everything else is
// direct delegation, so callers can pass aliases ("sonnet") or vendor
// identifiers ("glm-4.6") interchangeably while the wrapped factory only
// ever sees resolved SKUs.
type ResolvingFactory struct {
	inner Factory
}

// Compile-time check that ResolvingFactory satisfies the Factory interface.
var _ Factory = (*ResolvingFactory)(nil)

// NewResolvingFactory wraps inner with alias resolution.
func NewResolvingFactory(inner Factory) *ResolvingFactory {
	return &ResolvingFactory{inner: inner}
}

// New resolves modelID against the settings' alias table and forwards the
// vendor identifier to the wrapped factory. Returns the table's
// *settings.UnsupportedModelError when the identifier matches neither an
// alias nor a configured SKU.
func (f *ResolvingFactory) New(res *settings.Resolved, modelID string) (Model, error) {
	sku, err := res.Aliases.ResolveSKU(modelID)
	if err != nil {
		return nil, err
	}
	return f.inner.New(res, sku)
}
