package model

// Decorator enriches a form model after the canonical OpenAPI-derived
// structure has been built. The UI schema overlay and the fare-driven
// service options are both applied through this seam.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}
