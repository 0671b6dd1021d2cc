package normalize

import (
	"time"

	"github.com/nexten/smartmatch/internal/types"
)

// NormalizeCandidate converts a raw candidate record into a CandidateProfile.
// It never fails: absent or malformed fields become safe defaults and are
// recorded in FieldConfidence for downstream fallback decisions. A nil or
// empty record yields an empty profile with every field marked low
// confidence.
func NormalizeCandidate(raw map[string]any) *types.CandidateProfile {
	profile := &types.CandidateProfile{
		Skills:          map[string]types.SkillLevel{},
		FieldConfidence: map[string]float64{},
	}
	if len(raw) == 0 {
		for _, field := range []string{"skills", "desired_salary", "location", "experience_years", "motivations", "contract_preference"} {
			profile.FieldConfidence[field] = confidenceDefaulted
		}
		return profile
	}

	normalizeCandidateSkills(raw, profile)

	if v, ok := firstPresent(raw, "desired_salary", "salary_expectation", "salary"); ok {
		if r, parsed := parseSalary(v); parsed {
			profile.DesiredSalary = r
			if _, isString := v.(string); isString {
				profile.FieldConfidence["desired_salary"] = confidenceLegacy
			}
		} else {
			profile.FieldConfidence["desired_salary"] = confidenceRepaired
		}
	} else {
		profile.FieldConfidence["desired_salary"] = confidenceDefaulted
	}

	profile.Location = parseLocation(raw, profile.FieldConfidence, "location")
	if v, ok := firstPresent(raw, "remote_ok", "accepts_remote", "full_remote"); ok {
		if b, parsed := asBool(v); parsed && profile.Location != nil {
			profile.Location.RemoteOK = b
		} else if b, parsed := asBool(v); parsed && b {
			profile.Location = &types.Location{RemoteOK: true}
		}
	}
	if v, ok := firstPresent(raw, "will_relocate", "willing_to_relocate", "mobility"); ok {
		if b, parsed := asBool(v); parsed {
			if profile.Location == nil {
				profile.Location = &types.Location{}
			}
			profile.Location.WillRelocate = b
		}
	}

	if v, ok := firstPresent(raw, "experience_years", "years_of_experience", "experience"); ok {
		if years, parsed := asFloat(v); parsed && years >= 0 {
			profile.ExperienceYears = years
		} else {
			profile.FieldConfidence["experience_years"] = confidenceRepaired
		}
	} else {
		profile.FieldConfidence["experience_years"] = confidenceDefaulted
	}

	motivations, motivConfidence := extractMotivations(raw)
	profile.Motivations = motivations
	if motivConfidence < 1.0 {
		profile.FieldConfidence["motivations"] = motivConfidence
	}

	if v, ok := firstPresent(raw, "preferred_company_size", "company_size"); ok {
		if s, parsed := asString(v); parsed {
			profile.PreferredSize = canonicalToken(s)
		}
	}
	if v, ok := firstPresent(raw, "preferred_environment", "work_environment", "environment"); ok {
		if s, parsed := asString(v); parsed {
			profile.PreferredEnv = canonicalToken(s)
		}
	}
	if v, ok := firstPresent(raw, "target_sectors", "sectors", "sector"); ok {
		if list, parsed := asStringSlice(v); parsed {
			profile.TargetSectors = canonicalizeAll(list)
		}
	}
	if v, ok := firstPresent(raw, "avoided_sectors", "excluded_sectors"); ok {
		if list, parsed := asStringSlice(v); parsed {
			profile.AvoidedSectors = canonicalizeAll(list)
		}
	}

	if v, ok := firstPresent(raw, "available_from", "availability_date", "availability"); ok {
		if t, parsed := parseDate(v); parsed {
			profile.AvailableFrom = &t
		} else {
			profile.FieldConfidence["available_from"] = confidenceRepaired
		}
	}

	profile.ContractPreference = parseContractPreference(raw, profile.FieldConfidence)

	return profile
}

// normalizeCandidateSkills absorbs the three legacy skill shapes: a
// skill->proficiency map, a list of {name, proficiency, years} objects, or a
// bare string list (proficiency unknown, defaulted to 3 at half confidence).
func normalizeCandidateSkills(raw map[string]any, profile *types.CandidateProfile) {
	v, ok := firstPresent(raw, "skills", "competences")
	if !ok {
		profile.FieldConfidence["skills"] = confidenceDefaulted
		return
	}

	switch skills := v.(type) {
	case map[string]any:
		for name, levelRaw := range skills {
			key := canonicalToken(name)
			if key == "" {
				continue
			}
			level := types.SkillLevel{}
			switch entry := levelRaw.(type) {
			case map[string]any:
				if p, ok := asFloat(entry["proficiency"]); ok {
					level.Proficiency = clampLevel(int(p))
				}
				if y, ok := asFloat(entry["years"]); ok {
					level.Years = y
				}
			default:
				if p, ok := asFloat(levelRaw); ok {
					level.Proficiency = clampLevel(int(p))
				}
			}
			profile.Skills[key] = level
		}
	case []any:
		allStrings := true
		for _, item := range skills {
			if m, isMap := item.(map[string]any); isMap {
				allStrings = false
				name, ok := asString(m["name"])
				if !ok {
					name, ok = asString(m["skill"])
				}
				if !ok {
					continue
				}
				level := types.SkillLevel{}
				if p, parsed := asFloat(m["proficiency"]); parsed {
					level.Proficiency = clampLevel(int(p))
				}
				if y, parsed := asFloat(m["years"]); parsed {
					level.Years = y
				}
				profile.Skills[canonicalToken(name)] = level
			} else if s, isString := asString(item); isString {
				profile.Skills[canonicalToken(s)] = types.SkillLevel{Proficiency: 3}
			}
		}
		if allStrings && len(profile.Skills) > 0 {
			profile.FieldConfidence["skills"] = confidenceRepaired
		}
	default:
		profile.FieldConfidence["skills"] = confidenceRepaired
	}
}

// parseContractPreference absorbs the structured preference object or a
// legacy single contract_type value. The legacy shape synthesizes an
// implicit "preferred, single-choice" profile.
func parseContractPreference(raw map[string]any, fieldConfidence map[string]float64) *types.ContractPreference {
	if v, ok := raw["contract_preference"]; ok {
		if m, isMap := asMap(v); isMap {
			pref := &types.ContractPreference{}
			if level, parsed := asString(m["level"]); parsed {
				pref.Level = canonicalToken(level)
			}
			if list, parsed := asStringSlice(m["accepted_types"]); parsed {
				pref.AcceptedTypes = canonicalizeAll(list)
			}
			if len(pref.AcceptedTypes) > 0 {
				return pref
			}
		}
		fieldConfidence["contract_preference"] = confidenceRepaired
	}

	if v, ok := firstPresent(raw, "contract_type", "accepted_contract"); ok {
		if s, parsed := asString(v); parsed {
			fieldConfidence["contract_preference"] = confidenceLegacy
			return &types.ContractPreference{
				Level:         types.PreferencePreferred,
				AcceptedTypes: []string{canonicalToken(s)},
				Legacy:        true,
			}
		}
	}

	if _, noted := fieldConfidence["contract_preference"]; !noted {
		fieldConfidence["contract_preference"] = confidenceDefaulted
	}
	return nil
}

// parseLocation extracts a Location from either a nested object or flat
// city/lat/lng fields.
func parseLocation(raw map[string]any, fieldConfidence map[string]float64, field string) *types.Location {
	v, ok := firstPresent(raw, "location", "city")
	if !ok {
		fieldConfidence[field] = confidenceDefaulted
		return nil
	}

	loc := &types.Location{}
	switch l := v.(type) {
	case map[string]any:
		if city, parsed := asString(l["city"]); parsed {
			loc.City = canonicalToken(city)
		}
		if region, parsed := asString(l["region"]); parsed {
			loc.Region = canonicalToken(region)
		}
		if lat, parsed := asFloat(l["lat"]); parsed {
			loc.Lat = &lat
		}
		if lng, parsed := asFloat(l["lng"]); parsed {
			loc.Lng = &lng
		}
		if remote, parsed := asBool(l["remote_ok"]); parsed {
			loc.RemoteOK = remote
		}
		if relocate, parsed := asBool(l["will_relocate"]); parsed {
			loc.WillRelocate = relocate
		}
	case string:
		loc.City = canonicalToken(l)
	default:
		fieldConfidence[field] = confidenceRepaired
		return nil
	}

	if loc.City == "" && loc.Lat == nil && !loc.RemoteOK && !loc.WillRelocate {
		fieldConfidence[field] = confidenceRepaired
		return nil
	}
	return loc
}

// parseDate accepts ISO dates ("2025-09-01"), year-month ("2025-09"), and
// the "immediate"/"asap" sentinel which resolves to the current time.
func parseDate(v any) (time.Time, bool) {
	s, ok := asString(v)
	if !ok {
		return time.Time{}, false
	}
	switch canonicalToken(s) {
	case "immediate", "asap", "now":
		return time.Now(), true
	}
	for _, layout := range []string{"2006-01-02", "2006-01", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// canonicalizeAll canonicalizes every token of a list, dropping empties.
func canonicalizeAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if token := canonicalToken(s); token != "" {
			out = append(out, token)
		}
	}
	return out
}
