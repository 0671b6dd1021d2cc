package normalize

import (
	"github.com/nexten/smartmatch/internal/types"
)

// NormalizeJob converts a raw job record into a JobOpening. Like
// NormalizeCandidate it never fails; unusable fields degrade to defaults
// noted in FieldConfidence.
func NormalizeJob(raw map[string]any) *types.JobOpening {
	job := &types.JobOpening{
		Skills:          map[string]types.SkillRequirement{},
		FieldConfidence: map[string]float64{},
	}
	if len(raw) == 0 {
		for _, field := range []string{"skills", "salary", "location", "experience_level", "contract_type"} {
			job.FieldConfidence[field] = confidenceDefaulted
		}
		return job
	}

	if v, ok := firstPresent(raw, "title", "job_title", "position"); ok {
		if s, parsed := asString(v); parsed {
			job.Title = s
		}
	}

	normalizeJobSkills(raw, job)

	if v, ok := firstPresent(raw, "salary", "salary_range", "compensation"); ok {
		if r, parsed := parseSalary(v); parsed {
			job.Salary = r
			if _, isString := v.(string); isString {
				job.FieldConfidence["salary"] = confidenceLegacy
			}
		} else {
			job.FieldConfidence["salary"] = confidenceRepaired
		}
	} else {
		job.FieldConfidence["salary"] = confidenceDefaulted
	}

	job.Location = parseLocation(raw, job.FieldConfidence, "location")

	if v, ok := firstPresent(raw, "remote_mode", "remote_policy", "remote"); ok {
		job.RemoteMode = parseRemoteMode(v)
	}

	if v, ok := firstPresent(raw, "experience_level", "seniority", "level"); ok {
		if s, parsed := asString(v); parsed {
			job.ExperienceLevel = canonicalToken(s)
		}
	} else {
		job.FieldConfidence["experience_level"] = confidenceDefaulted
	}

	if v, ok := firstPresent(raw, "sector", "industry"); ok {
		if s, parsed := asString(v); parsed {
			job.Sector = canonicalToken(s)
		}
	}
	if v, ok := firstPresent(raw, "company_size", "size"); ok {
		if s, parsed := asString(v); parsed {
			job.CompanySize = canonicalToken(s)
		}
	}
	if v, ok := firstPresent(raw, "environment", "work_environment"); ok {
		if s, parsed := asString(v); parsed {
			job.Environment = canonicalToken(s)
		}
	}
	if v, ok := firstPresent(raw, "contract_type", "contract"); ok {
		if s, parsed := asString(v); parsed {
			job.ContractType = canonicalToken(s)
		}
	} else {
		job.FieldConfidence["contract_type"] = confidenceDefaulted
	}
	if v, ok := raw["urgency"]; ok {
		if s, parsed := asString(v); parsed {
			job.Urgency = canonicalToken(s)
		}
	}
	if v, ok := firstPresent(raw, "deadline", "start_date"); ok {
		if t, parsed := parseDate(v); parsed {
			job.Deadline = &t
		}
	}

	return job
}

// normalizeJobSkills absorbs job skill shapes: a skill->importance map, a
// map of {importance, required} objects, or a list of requirement objects.
// A bare string list defaults importance to 3, not required.
func normalizeJobSkills(raw map[string]any, job *types.JobOpening) {
	v, ok := firstPresent(raw, "skills", "required_skills", "competences")
	if !ok {
		job.FieldConfidence["skills"] = confidenceDefaulted
		return
	}

	switch skills := v.(type) {
	case map[string]any:
		for name, reqRaw := range skills {
			key := canonicalToken(name)
			if key == "" {
				continue
			}
			req := types.SkillRequirement{Importance: 3}
			switch entry := reqRaw.(type) {
			case map[string]any:
				if imp, parsed := asFloat(entry["importance"]); parsed {
					req.Importance = clampLevel(int(imp))
				}
				if required, parsed := asBool(entry["required"]); parsed {
					req.Required = required
				} else if required, parsed := asBool(entry["is_required"]); parsed {
					req.Required = required
				}
			default:
				if imp, parsed := asFloat(reqRaw); parsed {
					req.Importance = clampLevel(int(imp))
				}
			}
			job.Skills[key] = req
		}
	case []any:
		for _, item := range skills {
			if m, isMap := item.(map[string]any); isMap {
				name, parsed := asString(m["name"])
				if !parsed {
					name, parsed = asString(m["skill"])
				}
				if !parsed {
					continue
				}
				req := types.SkillRequirement{Importance: 3}
				if imp, hasImp := asFloat(m["importance"]); hasImp {
					req.Importance = clampLevel(int(imp))
				}
				if required, hasReq := asBool(m["required"]); hasReq {
					req.Required = required
				} else if required, hasReq := asBool(m["is_required"]); hasReq {
					req.Required = required
				}
				job.Skills[canonicalToken(name)] = req
			} else if s, isString := asString(item); isString {
				job.Skills[canonicalToken(s)] = types.SkillRequirement{Importance: 3}
			}
		}
		job.FieldConfidence["skills"] = confidenceLegacy
	default:
		job.FieldConfidence["skills"] = confidenceRepaired
	}
}

// parseRemoteMode maps raw remote policy values onto the three canonical
// modes. Booleans map to full/none.
func parseRemoteMode(v any) string {
	if b, ok := v.(bool); ok {
		if b {
			return types.RemoteFull
		}
		return types.RemoteNone
	}
	s, ok := asString(v)
	if !ok {
		return ""
	}
	switch canonicalToken(s) {
	case "full", "full_remote", "100%", "100_remote", "total":
		return types.RemoteFull
	case "hybrid", "partial", "2_3_days", "mixte":
		return types.RemoteHybrid
	case "none", "onsite", "on_site", "office", "presentiel":
		return types.RemoteNone
	default:
		return canonicalToken(s)
	}
}
