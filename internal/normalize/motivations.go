package normalize

import "fmt"

// maxMotivations bounds the significant motivations kept per candidate.
const maxMotivations = 3

// motivationAliases maps legacy questionnaire spellings to canonical
// motivation tokens.
var motivationAliases = map[string]string{
	"remuneration":       "compensation",
	"salaire":            "compensation",
	"salary":             "compensation",
	"evolution":          "career_growth",
	"career":             "career_growth",
	"growth":             "career_growth",
	"perspectives":       "career_growth",
	"challenge":          "technical_challenge",
	"technique":          "technical_challenge",
	"equilibre":          "work_life_balance",
	"flexibilite":        "work_life_balance",
	"flexibility":        "work_life_balance",
	"balance":            "work_life_balance",
	"stabilite":          "job_security",
	"stability":          "job_security",
	"securite":           "job_security",
	"ambiance":           "team_culture",
	"culture":            "team_culture",
	"equipe":             "team_culture",
	"teletravail":        "remote_work",
	"remote":             "remote_work",
	"sens":               "impact",
	"meaning":            "impact",
	"autonomie":          "autonomy",
	"autonomy":           "autonomy",
	"responsabilites":    "autonomy",
	"apprentissage":      "learning",
	"formation":          "learning",
	"learning":           "learning",
	"technical_challenge": "technical_challenge",
	"compensation":        "compensation",
	"career_growth":       "career_growth",
	"work_life_balance":   "work_life_balance",
	"job_security":        "job_security",
	"team_culture":        "team_culture",
	"remote_work":         "remote_work",
	"impact":              "impact",
}

// canonicalMotivation maps a raw motivation string to its canonical token.
// Unknown strings pass through canonicalized, so the weight engine can still
// ignore them by lookup failure rather than the normalizer guessing.
func canonicalMotivation(raw string) string {
	token := canonicalToken(raw)
	if canonical, ok := motivationAliases[token]; ok {
		return canonical
	}
	return token
}

// extractMotivations resolves the candidate's ordered motivation list from
// any of the legacy shapes: a direct array, indexed motivation_1..N fields,
// or inference from proxy answers. Returns the list plus the confidence of
// the extraction.
func extractMotivations(raw map[string]any) ([]string, float64) {
	// Shape 1: direct array.
	if v, ok := firstPresent(raw, "motivations", "motivation"); ok {
		if list, ok := asStringSlice(v); ok {
			return dedupeMotivations(list), 1.0
		}
	}

	// Shape 2: indexed fields motivation_1..motivation_5.
	var indexed []string
	for i := 1; i <= 5; i++ {
		if v, ok := raw[fmt.Sprintf("motivation_%d", i)]; ok && v != nil {
			if s, ok := asString(v); ok {
				indexed = append(indexed, s)
			}
		}
	}
	if len(indexed) > 0 {
		return dedupeMotivations(indexed), confidenceLegacy
	}

	// Shape 3: heuristic inference from proxy fields.
	if inferred := inferMotivations(raw); len(inferred) > 0 {
		return inferred, confidenceInferred
	}

	return nil, confidenceDefaulted
}

// inferMotivations derives motivations from proxy questionnaire answers when
// no explicit motivation field exists.
func inferMotivations(raw map[string]any) []string {
	var inferred []string

	// A firm salary negotiation stance implies compensation matters.
	if v, ok := firstPresent(raw, "salary_negotiation", "negotiation_stance"); ok {
		if s, ok := asString(v); ok {
			switch canonicalToken(s) {
			case "firm", "strong", "aggressive", "non_negotiable":
				inferred = append(inferred, "compensation")
			}
		}
	}

	// An explicit full-remote requirement implies remote work matters.
	if v, ok := firstPresent(raw, "remote_required", "requires_remote"); ok {
		if b, ok := asBool(v); ok && b {
			inferred = append(inferred, "remote_work")
		}
	}

	// Asking about training budget implies learning matters.
	if v, ok := raw["asked_about_training"]; ok {
		if b, ok := asBool(v); ok && b {
			inferred = append(inferred, "learning")
		}
	}

	return dedupeMotivations(inferred)
}

// dedupeMotivations canonicalizes, removes duplicates preserving order, and
// truncates to the significant maximum.
func dedupeMotivations(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, maxMotivations)
	for _, m := range list {
		canonical := canonicalMotivation(m)
		if canonical == "" {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
		if len(out) == maxMotivations {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
