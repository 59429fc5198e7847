package skills

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"javascript":  "JavaScript",
	"js":          "JavaScript",
	"typescript":  "TypeScript",
	"ts":          "TypeScript",
	"k8s":         "Kubernetes",
	"kubernetes":  "Kubernetes",
	"react.js":    "React",
	"reactjs":     "React",
	"vue":         "Vue.js",
	"vuejs":       "Vue.js",
	"node.js":     "Node.js",
	"nodejs":      "Node.js",
	"postgres":    "PostgreSQL",
	"postgresql":  "PostgreSQL",
	"springboot":  "Spring Boot",
	"spring-boot": "Spring Boot",
	"powerbi":     "Power BI",
	"power bi":    "Power BI",
	"ci/cd":       "CI/CD",
}

// NormalizeSkillName normalizes a skill name to its canonical form
func NormalizeSkillName(skillName string) string {
	normalized := strings.Join(strings.Fields(skillName), " ")
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	// All-lowercase single words get a leading capital; acronyms and mixed case are kept
	if normalized == lower && !strings.Contains(normalized, " ") {
		r, size := utf8.DecodeRuneInString(normalized)
		return string(unicode.ToUpper(r)) + normalized[size:]
	}

	return normalized
}

// Dedupe merges skill lists in order, dropping case-insensitive duplicates of the
// normalized name. At most limit names are returned; limit <= 0 means no cap.
func Dedupe(limit int, lists ...[]string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, name := range list {
			normalized := NormalizeSkillName(name)
			if normalized == "" {
				continue
			}
			key := strings.ToLower(normalized)
			if seen[key] {
				continue
			}
			if limit > 0 && len(out) >= limit {
				return out
			}
			seen[key] = true
			out = append(out, normalized)
		}
	}
	return out
}
