package roevaluate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"roeval/lib/rdfns"
)

// ChecklistPredicate is the predicate whose object in the service description
// is the checklist uri template.
const ChecklistPredicate = rdfns.ROE + "checklist"

var prefixDeclRegex = regexp.MustCompile(`(?mi)^\s*@?prefix\s+([A-Za-z][\w.-]*)?:\s*<([^>]*)>`)

// literal forms, the long (triple quoted) forms must come first
const literalPattern = `"""([\s\S]*?)"""|'''([\s\S]*?)'''|"((?:[^"\\\n]|\\.)*)"|'((?:[^'\\\n]|\\.)*)'`

// checklistPredicates returns every way the checklist predicate can be
// written in a document with the given prefix declarations.
func checklistPredicates(doc string) []string {
	declared := map[string]string{}
	for _, match := range prefixDeclRegex.FindAllStringSubmatch(doc, -1) {
		declared[match[1]] = match[2]
	}

	local := strings.TrimPrefix(ChecklistPredicate, rdfns.ROE)
	predicates := []string{"<" + ChecklistPredicate + ">"}
	for name, ns := range declared {
		if ns == rdfns.ROE {
			predicates = append(predicates, name+":"+local)
		}
	}
	// documents that forget to declare the prefix still use roe: by convention
	if _, ok := declared["roe"]; !ok {
		predicates = append(predicates, "roe:"+local)
	}
	return predicates
}

func checklistRegex(predicates []string) *regexp.Regexp {
	quoted := make([]string, len(predicates))
	for i, p := range predicates {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(
		`(?:^|[^\w:.\-])(?:` + strings.Join(quoted, "|") + `)\s+(?:` + literalPattern + `)`,
	)
}

var literalEscapeRegex = regexp.MustCompile(`\\(?:u([0-9A-Fa-f]{4})|U([0-9A-Fa-f]{8})|([tbnrf"'\\]))`)

var literalEscapes = map[string]string{
	"t": "\t", "b": "\b", "n": "\n", "r": "\r", "f": "\f",
	`"`: `"`, "'": "'", `\`: `\`,
}

// decodeEscapes decodes the Turtle string escapes in a literal, escapes that
// are not valid Turtle are left as they are.
func decodeEscapes(literal string) string {
	return literalEscapeRegex.ReplaceAllStringFunc(literal, func(escape string) string {
		match := literalEscapeRegex.FindStringSubmatch(escape)
		hex := match[1] + match[2]
		if hex == "" {
			return literalEscapes[match[3]]
		}
		code, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || !utf8.ValidRune(rune(code)) {
			return escape
		}
		return string(rune(code))
	})
}

// ExtractChecklistTemplate finds the checklist uri template in a Turtle
// service description. This is a text match on the checklist predicate rather
// than a full Turtle parse: prefix declarations bound to the evaluate
// namespace and the full predicate IRI are recognized.
func ExtractChecklistTemplate(doc string) (string, error) {
	re := checklistRegex(checklistPredicates(doc))
	for _, match := range re.FindAllStringSubmatch(doc, -1) {
		var literal string
		for _, group := range match[1:] {
			if group != "" {
				literal = group
				break
			}
		}
		literal = strings.TrimSpace(decodeEscapes(literal))
		if literal != "" {
			return literal, nil
		}
	}
	return "", ErrTemplateNotFound
}
