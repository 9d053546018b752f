package service

import (
	"github.com/microcosm-cc/bluemonday"

	"oompa/backend/internal/config"
)

// DescriptionRenderer turns the remote description markup into something
// safe to hand to the presentation layer.
type DescriptionRenderer interface {
	Render(raw string) string
}

type policyRenderer struct {
	policy *bluemonday.Policy
}

func (r *policyRenderer) Render(raw string) string {
	return r.policy.Sanitize(raw)
}

// trustedRenderer passes markup through untouched. Only for verified feeds.
type trustedRenderer struct{}

func (trustedRenderer) Render(raw string) string {
	return raw
}

// NewDescriptionRenderer builds the renderer for a config.Description* mode.
// Unknown modes sanitize.
func NewDescriptionRenderer(mode string) DescriptionRenderer {
	switch mode {
	case config.DescriptionTrusted:
		return trustedRenderer{}
	case config.DescriptionPlain:
		return &policyRenderer{policy: bluemonday.StrictPolicy()}
	default:
		p := bluemonday.UGCPolicy()
		p.AllowElements("section", "figure", "figcaption")
		return &policyRenderer{policy: p}
	}
}
