package filter

import (
	"regexp"
	"strings"
)

// techKeywords is the technology vocabulary a posting must hit to be
// considered at all. Mixed English/Spanish on purpose: the tracked boards
// publish in both.
var techKeywords = []string{
	"node",
	"javascript",
	"typescript",
	"js",
	"ts",
	"python",
	"java",
	"react",
	"angular",
	"vue",
	"backend",
	"back-end",
	"frontend",
	"front-end",
	"fullstack",
	"full-stack",
	"full stack",
	"sistemas",
	"sistemas jr",
	"desarrollador",
	"programador",
	"soporte tecnico",
	"soporte técnico",
	"infraestructura",
	"engineer",
	"developer",
	"golang",
	"c++",
	"cpp",
}

// juniorLevels marks entry-level synonyms across both languages.
var juniorLevels = []string{
	"junior",
	"trainee",
	"ssr",
	"semi-senior",
	"associate",
	"jr",
	"jr.",
	"semi-sr",
	"semi sr",
	"nivel inicial",
	"iniciante",
	"practicante",
}

var (
	techRegex  = keywordRegex(techKeywords)
	levelRegex = keywordRegex(juniorLevels)
)

// keywordRegex compiles a whole-word, case-insensitive alternation over the
// vocabulary.
func keywordRegex(keywords []string) *regexp.Regexp {
	escaped := make([]string, len(keywords))
	for i, kw := range keywords {
		escaped[i] = regexp.QuoteMeta(kw)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(escaped, "|") + `)\b`)
}
