package phonotactics

import (
	"strings"

	"glottisdale/internal/syllable"
)

// Licit multi-consonant onsets used by onset maximization.
var (
	twoConsonantOnsets = setOf(
		"P R", "T R", "K R", "B R", "D R", "G R", "F R", "TH R",
		"P L", "K L", "B L", "G L", "F L", "S L",
		"K W", "G W", "S W",
		"S P", "S T", "S K",
		"HH Y", "R W",
	)
	threeConsonantOnsets = setOf("S T R", "S K L", "T R W")
	laxVowels            = setOf("IH1", "IH2", "EH1", "EH2", "AE1", "AE2", "AH1", "AH2", "UH1", "UH2")
)

type syllableParts struct {
	onset, nucleus, coda []string
}

func (p syllableParts) labels() []string {
	out := make([]string, 0, len(p.onset)+len(p.nucleus)+len(p.coda))
	out = append(out, p.onset...)
	out = append(out, p.nucleus...)
	return append(out, p.coda...)
}

// SplitPronunciation divides an ARPABET pronunciation into syllables using
// the Maximum Onset Principle. Interludes between vowels go to the following
// onset as far as the onset stays licit. A pronunciation without vowels comes
// back as a single group.
func SplitPronunciation(labels []string) [][]string {
	if len(labels) == 0 {
		return nil
	}
	parts := splitParts(labels)
	out := make([][]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, p.labels())
	}
	return out
}

func splitParts(labels []string) []syllableParts {
	var (
		nuclei    [][]string
		onsets    [][]string
		lastVowel = -1
	)
	for i, label := range labels {
		if !IsVowel(label) {
			continue
		}
		nuclei = append(nuclei, []string{label})
		onsets = append(onsets, append([]string(nil), labels[lastVowel+1:i]...))
		lastVowel = i
	}
	if len(nuclei) == 0 {
		return []syllableParts{{nucleus: append([]string(nil), labels...)}}
	}

	codas := make([][]string, len(nuclei))
	for i := 1; i < len(onsets); i++ {
		onset := onsets[i]
		var coda []string

		// R-colouring: a leading R belongs to the previous vowel.
		if len(onset) > 1 && onset[0] == "R" {
			nuclei[i-1] = append(nuclei[i-1], onset[0])
			onset = onset[1:]
		}
		// Y-gliding: a trailing Y after a cluster joins the next vowel.
		if len(onset) > 2 && onset[len(onset)-1] == "Y" {
			nuclei[i] = append([]string{"Y"}, nuclei[i]...)
			onset = onset[:len(onset)-1]
		}
		// /s/ after a stressed lax vowel closes that syllable.
		if len(onset) > 1 && onset[0] == "S" && isLax(nuclei[i-1]) {
			coda = append(coda, onset[0])
			onset = onset[1:]
		}

		keep := onsetDepth(onset)
		split := len(onset) - keep
		coda = append(coda, onset[:split]...)
		onsets[i] = append([]string(nil), onset[split:]...)
		codas[i-1] = coda
	}
	codas[len(codas)-1] = append([]string(nil), labels[lastVowel+1:]...)

	out := make([]syllableParts, len(nuclei))
	for i := range nuclei {
		out[i] = syllableParts{onset: onsets[i], nucleus: nuclei[i], coda: codas[i]}
	}
	return out
}

func isLax(nucleus []string) bool {
	if len(nucleus) == 0 {
		return false
	}
	_, ok := laxVowels[nucleus[len(nucleus)-1]]
	return ok
}

// onsetDepth returns how many trailing consonants of an interlude form a
// licit onset. A single consonant is always licit.
func onsetDepth(onset []string) int {
	n := len(onset)
	if n <= 1 {
		return n
	}
	if _, ok := twoConsonantOnsets[strings.Join(onset[n-2:], " ")]; !ok {
		return 1
	}
	if n >= 3 {
		if _, ok := threeConsonantOnsets[strings.Join(onset[n-3:], " ")]; ok {
			return 3
		}
	}
	return 2
}

// Syllabify splits a word with a pronunciation into timed syllables. When
// every phoneme carries timing the syllable bounds follow the phonemes;
// otherwise the word's span is shared out in proportion to phoneme count.
// It satisfies syllable.Syllabifier.
func Syllabify(word syllable.Word, wordIndex int) []syllable.Syllable {
	if len(word.Phonemes) == 0 {
		return nil
	}
	labels := make([]string, len(word.Phonemes))
	for i, p := range word.Phonemes {
		labels[i] = p.Label
	}
	groups := SplitPronunciation(labels)

	if phonemesTimed(word.Phonemes) {
		out := make([]syllable.Syllable, 0, len(groups))
		offset := 0
		for _, g := range groups {
			phones := append([]syllable.Phoneme(nil), word.Phonemes[offset:offset+len(g)]...)
			offset += len(g)
			out = append(out, syllable.Syllable{
				Phonemes:  phones,
				Start:     phones[0].Start,
				End:       phones[len(phones)-1].End,
				Word:      word.Word,
				WordIndex: wordIndex,
			})
		}
		return out
	}

	total := float64(len(labels))
	span := word.End - word.Start
	current := word.Start
	out := make([]syllable.Syllable, 0, len(groups))
	for gi, g := range groups {
		dur := span * float64(len(g)) / total
		end := current + dur
		if gi == len(groups)-1 {
			end = word.End
		}
		phones := make([]syllable.Phoneme, len(g))
		step := dur / float64(len(g))
		for i, label := range g {
			phones[i] = syllable.Phoneme{
				Label: label,
				Start: current + step*float64(i),
				End:   current + step*float64(i+1),
			}
		}
		phones[len(phones)-1].End = end
		out = append(out, syllable.Syllable{
			Phonemes:  phones,
			Start:     current,
			End:       end,
			Word:      word.Word,
			WordIndex: wordIndex,
		})
		current = end
	}
	return out
}

func phonemesTimed(phonemes []syllable.Phoneme) bool {
	for _, p := range phonemes {
		if p.End <= p.Start {
			return false
		}
	}
	return true
}
