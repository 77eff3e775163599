package actions

import "github.com/arthur-debert/moopad/pkg/types"

// specBuilder assembles an ActionSpec field by field. Later applications
// overwrite earlier ones, but only for the fields they declare.
type specBuilder struct {
	spec types.ActionSpec
}

func (b *specBuilder) apply(s types.ActionSpec) *specBuilder {
	if s.Run != nil {
		b.spec.Run = s.Run
	}
	if s.Cwd != nil {
		b.spec.Cwd = s.Cwd
	}
	if s.Type != nil {
		b.spec.Type = s.Type
	}
	if s.Name != nil {
		b.spec.Name = s.Name
	}
	if s.Template != nil {
		b.spec.Template = s.Template
	}
	return b
}

func (b *specBuilder) build() types.ActionSpec {
	return b.spec
}

// Resolve merges decl with the template it references. The template
// provides the base fields and every field declared on decl overrides
// it; the merge is shallow. When decl references no template, or an id
// that does not exist, decl is returned unchanged and found reports
// whether a referenced template was located. The type defaults to
// "shell" when neither side declares one.
func Resolve(decl types.ActionSpec, templates []types.ActionTemplate) (spec types.ActionSpec, found bool) {
	b := &specBuilder{}

	if decl.HasTemplate() {
		if tmpl, ok := types.FindTemplate(templates, *decl.Template); ok {
			b.apply(tmpl.ActionSpec)
			found = true
		}
	}
	b.apply(decl)

	spec = b.build()
	if spec.Type == nil {
		spec.Type = types.StringPtr(types.DefaultActionType)
	}
	return spec, found
}
