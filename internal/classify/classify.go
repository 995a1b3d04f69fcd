package classify

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser capitalizes the leading letter of a token without lowercasing the
// rest, so camelCase fragments like "arrowRattle" keep their inner casing.
var titleCaser = cases.Title(language.English, cases.NoLower)

// ParseShortName derives (category, unitType, subcategory) from a raw asset
// short name such as "cmbt.rng.slinger.short.00.MSTR.wav". unitType is empty
// when no known unit occurs in the name.
func ParseShortName(shortName string) (string, string, string) {
	name := trimExtension(shortName)
	lower := strings.ToLower(name)

	category := categoryFor(lower)
	unitType := unitTypeFor(lower)
	subcategory := subcategoryFor(name)
	return category, unitType, subcategory
}

// categoryFor applies the fixed-order prefix/substring rules. The order is
// load-bearing: earlier rules shadow later ones.
func categoryFor(lower string) string {
	switch {
	case strings.HasPrefix(lower, "cmbt"):
		return "combat"
	case strings.HasPrefix(lower, "mv"), strings.Contains(lower, "step"), strings.Contains(lower, "hoof"):
		return "movement"
	case strings.HasPrefix(lower, "vcl"), strings.Contains(lower, "grunt"), strings.Contains(lower, "vocal"):
		return "vocal"
	case strings.Contains(lower, "bodyfall"), strings.Contains(lower, "death"):
		return "death"
	case strings.Contains(lower, "weapon"), strings.Contains(lower, "arrow"), strings.Contains(lower, "bow"):
		return "weapon"
	case strings.Contains(lower, "impact"):
		return "impact"
	case strings.HasPrefix(lower, "ui"):
		return "ui"
	case strings.Contains(lower, "ambience"), strings.Contains(lower, "ambient"):
		return "ambience"
	default:
		return "other"
	}
}

// unitTypeFor returns the known unit whose occurrence appears earliest in the
// name. Ties fall to vocabulary order.
func unitTypeFor(lower string) string {
	best := ""
	bestIdx := -1
	for _, unit := range vocab.Units {
		idx := strings.Index(lower, strings.ToLower(unit))
		if idx < 0 {
			continue
		}
		if bestIdx < 0 || idx < bestIdx {
			best = unit
			bestIdx = idx
		}
	}
	return best
}

func subcategoryFor(name string) string {
	parts := strings.Split(name, ".")
	kept := make([]string, 0, 3)
	for _, part := range parts {
		if part == "" || isNumeric(part) || len(part) <= 2 || part == "MSTR" || part == "SFX" {
			continue
		}
		kept = append(kept, part)
		if len(kept) == 3 {
			break
		}
	}
	return strings.Join(kept, "_")
}

// DisplayName formats a raw short name for presentation:
// "cmbt.rng.slinger.short.00.MSTR.wav" becomes "Combat Range Slinger".
func DisplayName(shortName string) string {
	name := trimExtension(shortName)

	kept := make([]string, 0, 5)
	for _, part := range splitTokens(name) {
		if part == "" || isNumeric(part) || len(part) <= 1 || containsFold(vocab.DisplayNoise, part) {
			continue
		}
		kept = append(kept, part)
		if len(kept) == 5 {
			break
		}
	}

	words := make([]string, 0, len(kept))
	for _, part := range kept {
		if expanded, ok := vocab.Abbreviations[strings.ToLower(part)]; ok {
			words = append(words, expanded)
			continue
		}
		words = append(words, titleCaser.String(part))
	}
	return strings.Join(words, " ")
}

// MusicTitle formats an embedded music asset name:
// "mus.theme.title.MSTR.wav" becomes "Theme Title".
func MusicTitle(shortName string) string {
	name := trimExtension(shortName)

	kept := make([]string, 0, 4)
	for _, part := range splitTokens(name) {
		if part == "" || isNumeric(part) || len(part) <= 1 || containsFold(vocab.MusicNoise, part) {
			continue
		}
		kept = append(kept, part)
	}
	if len(kept) == 0 {
		return shortName
	}

	words := make([]string, 0, len(kept))
	for _, part := range kept {
		words = append(words, titleCaser.String(part))
	}
	return strings.Join(words, " ")
}

// streamedTitleSuffix is a bank-generated hash suffix seen on some streamed
// track names.
const streamedTitleSuffix = "_C49E5CC0"

// StreamedMusicTitle formats a streamed track name. Handles the
// "NN_Artist_Title_44-16_NNNNNN" release convention, bank hash suffixes, and
// plain titles with path prefixes.
func StreamedMusicTitle(shortName string) string {
	name := trimExtension(shortName)

	// Drop any leading path, whichever separator produced it.
	if idx := strings.LastIndexAny(name, `\/`); idx >= 0 {
		name = name[idx+1:]
	}

	if strings.Contains(name, "Christopher Tin") || strings.Contains(name, "_44-16_") {
		parts := strings.Split(name, "_")
		if len(parts) >= 3 {
			segments := make([]string, 0, len(parts)-1)
			for _, part := range parts[1:] {
				if strings.Contains(part, "44-16") || isNumeric(part) {
					break
				}
				segments = append(segments, part)
			}
			if len(segments) > 0 {
				return strings.Join(segments, " - ")
			}
		}
	}

	if idx := strings.LastIndex(name, streamedTitleSuffix); idx >= 0 {
		name = name[:idx]
	}

	clean := strings.ReplaceAll(name, ".MSTR", "")
	clean = strings.ReplaceAll(clean, "_MSTR", "")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return shortName
	}
	return clean
}

// IsMusic reports whether a short name denotes a music asset.
func IsMusic(shortName string) bool {
	lower := strings.ToLower(shortName)
	return strings.HasPrefix(lower, "mus.") || strings.HasPrefix(lower, "bgm.") || strings.Contains(lower, "music_")
}

// IsExcluded reports whether an asset must be skipped. Withheld-content
// matches are unconditional; music assets are additionally excluded unless
// includeMusic is set.
func IsExcluded(shortName string, includeMusic bool) bool {
	lower := strings.ToLower(shortName)
	for _, pattern := range vocab.Excluded {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	if !includeMusic && IsMusic(lower) {
		return true
	}
	return false
}

// ExcludedPatterns returns a copy of the withheld-content substrings, for
// callers that purge previously stored matches.
func ExcludedPatterns() []string {
	return append([]string(nil), vocab.Excluded...)
}

// Tags builds the searchable tag list for a sound: category, lower-cased unit
// type when present, then any action keywords found in the name.
func Tags(shortName, category, unitType string) []string {
	tags := []string{category}
	if unitType != "" {
		tags = append(tags, strings.ToLower(unitType))
	}
	lower := strings.ToLower(shortName)
	for _, keyword := range vocab.TagKeywords {
		if strings.Contains(lower, keyword) {
			tags = append(tags, keyword)
		}
	}
	return tags
}

func trimExtension(name string) string {
	name = strings.TrimSuffix(name, ".wav")
	return strings.TrimSuffix(name, ".WAV")
}

func splitTokens(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return r == '.' || r == '_'
	})
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}
