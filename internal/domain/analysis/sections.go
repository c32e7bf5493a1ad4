package analysis

import (
	"regexp"
	"strings"
)

type SectionKind string

const (
	KindSeverity       SectionKind = "severity"
	KindPattern        SectionKind = "pattern"
	KindCaution        SectionKind = "caution"
	KindPhysician      SectionKind = "physician"
	KindRecommendation SectionKind = "recommendation"
	KindOther          SectionKind = "other"
)

// Section es un bloque de la respuesta del modelo listo para mostrar.
type Section struct {
	Kind  SectionKind
	Title string
	Body  string
}

var (
	numberPrefix = regexp.MustCompile(`^\d+\.\s*`)
	ruleLine     = regexp.MustCompile(`^\s*(-{3,}|\*{3,}|_{3,})\s*$`)
)

var kindKeywords = []struct {
	kind     SectionKind
	keywords []string
}{
	{KindSeverity, []string{"severity", "serious"}},
	{KindPattern, []string{"pattern", "trend"}},
	{KindCaution, []string{"caution", "lifestyle", "warning"}},
	{KindPhysician, []string{"physician", "doctor", "clinician"}},
	{KindRecommendation, []string{"recommend", "advice", "suggest"}},
}

// SplitSections corta el texto en "###". Lo que va antes del primer "###" se
// descarta. Si el modelo no respetó la plantilla devuelve una única sección
// con el texto completo y wellFormed=false.
func SplitSections(raw string) (sections []Section, wellFormed bool) {
	parts := strings.Split(raw, sectionDelimiter)
	if len(parts) > 1 {
		for _, part := range parts[1:] {
			sec, ok := parseSection(part)
			if ok {
				sections = append(sections, sec)
			}
		}
	}

	if len(sections) == 0 {
		body := stripRules(raw)
		if body == "" {
			return []Section{}, false
		}
		return []Section{{Kind: KindOther, Body: body}}, false
	}
	return sections, true
}

func parseSection(part string) (Section, bool) {
	part = strings.TrimSpace(part)
	if part == "" {
		return Section{}, false
	}

	title, body, _ := strings.Cut(part, "\n")
	title = strings.TrimSpace(strings.TrimLeft(title, "#"))
	title = numberPrefix.ReplaceAllString(title, "")

	return Section{
		Kind:  classify(title),
		Title: title,
		Body:  stripRules(body),
	}, true
}

func classify(title string) SectionKind {
	t := strings.ToLower(title)
	for _, k := range kindKeywords {
		for _, kw := range k.keywords {
			if strings.Contains(t, kw) {
				return k.kind
			}
		}
	}
	return KindOther
}

// stripRules quita las líneas horizontales (---) y recorta.
func stripRules(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		if ruleLine.MatchString(l) {
			continue
		}
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
