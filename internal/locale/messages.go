package locale

import (
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/xolan/datepick/internal/constraint"
)

// Message localizes id with template data. Unknown ids are returned as is.
func (l *Locale) Message(id string, data map[string]any) string {
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}

// ReasonMessage explains a failed validation result in this locale, with
// boundary dates rendered in the medium style.
func (l *Locale) ReasonMessage(res constraint.Result) string {
	if res.Valid() {
		return ""
	}
	return l.Message("reason_"+strings.ReplaceAll(res.Reason.Code(), "-", "_"), map[string]any{
		"Candidate": res.Candidate,
		"Boundary":  l.FormatDate(res.Boundary, StyleMedium),
		"Span":      res.Span,
		"Limit":     res.Limit,
	})
}
