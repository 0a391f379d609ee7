package phonotactics

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sonority classes, lowest to highest.
const (
	SonorityUnknown   = 0
	SonorityStop      = 1
	SonorityAffricate = 2
	SonorityFricative = 3
	SonorityNasal     = 4
	SonorityLiquid    = 5
	SonorityGlide     = 6
	SonorityVowel     = 7
)

var arpabetClasses = map[string]int{
	"P": SonorityStop, "B": SonorityStop, "T": SonorityStop,
	"D": SonorityStop, "K": SonorityStop, "G": SonorityStop,
	"CH": SonorityAffricate, "JH": SonorityAffricate,
	"F": SonorityFricative, "V": SonorityFricative, "TH": SonorityFricative,
	"DH": SonorityFricative, "S": SonorityFricative, "Z": SonorityFricative,
	"SH": SonorityFricative, "ZH": SonorityFricative, "HH": SonorityFricative,
	"M": SonorityNasal, "N": SonorityNasal, "NG": SonorityNasal,
	"L": SonorityLiquid, "R": SonorityLiquid,
	"W": SonorityGlide, "Y": SonorityGlide,
}

var arpabetVowels = setOf("AA", "AE", "AH", "AO", "AW", "AY", "EH", "ER", "EY", "IH", "IY", "OW", "OY", "UH", "UW")

// English syllables cannot begin with these.
var (
	arpabetIllegalOnsets = setOf("NG", "ZH")
	ipaIllegalOnsets     = setOf("ŋ")
)

var (
	ipaDiphthongs = []string{"aɪ", "aʊ", "eɪ", "oʊ", "ɔɪ"}
	ipaVowels     = "aeiouɪɛæɑɒɔʊəɜɐʌ"
	ipaGlides     = "jwɥ"
	ipaRhotics    = "rɹɾɽʁʀ"
	ipaLaterals   = "lɫɬɮ"
	ipaNasals     = "mnɲŋɴ"
	ipaFricatives = "fvθðszʃʒçxɣhɦ"
	ipaStops      = "pbtdkgʔ"
)

func setOf(items ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, item := range items {
		out[item] = struct{}{}
	}
	return out
}

// Sonority returns the sonority class of a phoneme label. Unknown labels
// return SonorityUnknown.
func Sonority(label string) int {
	if label == "" {
		return SonorityUnknown
	}
	if isIPA(label) {
		return ipaSonority(label)
	}
	base := stripStress(label)
	if class, ok := arpabetClasses[base]; ok {
		return class
	}
	if base != label {
		return SonorityVowel
	}
	if _, ok := arpabetVowels[base]; ok {
		return SonorityVowel
	}
	return SonorityUnknown
}

// IsVowel reports whether label is a vowel in either label set.
func IsVowel(label string) bool {
	return Sonority(label) == SonorityVowel
}

// IsIllegalOnset reports whether a syllable may not begin with label.
func IsIllegalOnset(label string) bool {
	if _, ok := arpabetIllegalOnsets[stripStress(label)]; ok {
		return true
	}
	_, ok := ipaIllegalOnsets[label]
	return ok
}

func isIPA(label string) bool {
	r, _ := utf8.DecodeRuneInString(label)
	return unicode.IsLower(r) || r >= utf8.RuneSelf
}

func stripStress(label string) string {
	return strings.TrimRight(label, "0123456789")
}

func ipaSonority(label string) int {
	for _, d := range ipaDiphthongs {
		if strings.HasPrefix(label, d) {
			return SonorityVowel
		}
	}
	first, _ := utf8.DecodeRuneInString(label)
	stripped := strings.TrimRight(label, "ːˑ")
	if strings.ContainsRune(ipaVowels, first) {
		return SonorityVowel
	}
	if utf8.RuneCountInString(stripped) == 1 {
		r, _ := utf8.DecodeRuneInString(stripped)
		if strings.ContainsRune(ipaVowels, r) {
			return SonorityVowel
		}
	}
	switch {
	case strings.ContainsRune(ipaGlides, first):
		return SonorityGlide
	case strings.ContainsRune(ipaRhotics, first), strings.ContainsRune(ipaLaterals, first):
		return SonorityLiquid
	case strings.ContainsRune(ipaNasals, first):
		return SonorityNasal
	case strings.ContainsRune(ipaFricatives, first):
		return SonorityFricative
	case strings.ContainsRune(ipaStops, first):
		return SonorityStop
	}
	return SonorityUnknown
}
