package model

import "strings"

// Decorator enriches a form model after it has been loaded and before it is
// built into a live form.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// LabelDecorator fills empty field labels using labeler, or DefaultLabeler
// when labeler is nil.
func LabelDecorator(labeler func(string) string) Decorator {
	if labeler == nil {
		labeler = DefaultLabeler
	}
	return DecoratorFunc(func(form *FormModel) error {
		if form == nil {
			return nil
		}
		for i := range form.Fields {
			if strings.TrimSpace(form.Fields[i].Label) == "" {
				form.Fields[i].Label = labeler(form.Fields[i].Name)
			}
		}
		return nil
	})
}
