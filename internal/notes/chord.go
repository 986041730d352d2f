package notes

import (
	"math"
	"sort"
	"strings"
)

type chordDef struct {
	intervals   []int
	symbol      string
	priority    float64
	requiresAll bool
}

// chordTable is ordered; among equally scored matches the earlier entry wins.
var chordTable = []chordDef{
	// triads
	{[]int{0, 4, 7}, "", 1000, true},
	{[]int{0, 3, 7}, "m", 1000, true},
	{[]int{0, 4, 8}, "aug", 1000, true},
	{[]int{0, 3, 6}, "dim", 1000, true},
	{[]int{0, 5, 7}, "sus4", 950, true},
	{[]int{0, 2, 7}, "sus2", 950, true},

	// sevenths
	{[]int{0, 4, 7, 11}, "maj7", 900, true},
	{[]int{0, 4, 7, 10}, "7", 900, true},
	{[]int{0, 3, 7, 10}, "m7", 900, true},
	{[]int{0, 3, 7, 11}, "m(maj7)", 850, true},
	{[]int{0, 3, 6, 10}, "m7b5", 850, true},
	{[]int{0, 3, 6, 9}, "dim7", 850, true},
	{[]int{0, 4, 8, 10}, "aug7", 800, true},
	{[]int{0, 4, 8, 11}, "maj7#5", 800, true},
	{[]int{0, 5, 7, 10}, "7sus4", 750, true},
	{[]int{0, 2, 7, 10}, "7sus2", 750, true},

	// sixths
	{[]int{0, 4, 7, 9}, "6", 850, true},
	{[]int{0, 3, 7, 9}, "m6", 850, true},
	{[]int{0, 4, 7, 9, 2}, "6/9", 800, true},
	{[]int{0, 3, 7, 9, 2}, "m6/9", 800, true},

	// ninths
	{[]int{0, 4, 7, 10, 2}, "9", 700, false},
	{[]int{0, 4, 7, 11, 2}, "maj9", 700, false},
	{[]int{0, 3, 7, 10, 2}, "m9", 700, false},
	{[]int{0, 3, 7, 11, 2}, "m(maj9)", 650, false},
	{[]int{0, 4, 7, 10, 1}, "7b9", 650, false},
	{[]int{0, 4, 7, 10, 3}, "7#9", 650, false},

	// elevenths
	{[]int{0, 4, 7, 10, 2, 5}, "11", 600, false},
	{[]int{0, 3, 7, 10, 2, 5}, "m11", 600, false},
	{[]int{0, 4, 7, 10, 6}, "7#11", 580, false},
	{[]int{0, 4, 7, 11, 6}, "maj7#11", 580, false},

	// thirteenths
	{[]int{0, 4, 7, 10, 2, 9}, "13", 550, false},
	{[]int{0, 3, 7, 10, 2, 9}, "m13", 550, false},
	{[]int{0, 4, 7, 10, 8}, "7b13", 530, false},

	// added tones
	{[]int{0, 4, 7, 2}, "add9", 500, true},
	{[]int{0, 3, 7, 2}, "m(add9)", 500, true},
	{[]int{0, 4, 7, 5}, "add11", 450, true},
	{[]int{0, 4, 7, 6}, "add#11", 450, true},

	// altered
	{[]int{0, 4, 6, 10}, "7b5", 600, true},
	{[]int{0, 4, 8, 10}, "7#5", 600, true},
	{[]int{0, 3, 6, 10}, "m7b5", 600, true},

	{[]int{0, 7}, "5", 100, true},
}

// extensionSymbols names a pitch class left over after a chord match, by its
// interval above the root.
var extensionSymbols = map[int]string{
	1:  "b9",
	2:  "9",
	3:  "#9",
	5:  "11",
	6:  "#11",
	8:  "b13",
	9:  "13",
	10: "7",
	11: "maj7",
}

var intervalNames = [12]string{"R", "b2", "2", "b3", "3", "4", "b5", "5", "#5", "6", "b7", "7"}

// pitchSet is a set of pitch classes that remembers insertion order, which
// decides the order extensions are written in.
type pitchSet struct {
	order []int
	has   [12]bool
}

func (p *pitchSet) add(pc int) {
	if !p.has[pc] {
		p.has[pc] = true
		p.order = append(p.order, pc)
	}
}

func (p *pitchSet) sorted() []int {
	out := append([]int(nil), p.order...)
	sort.Ints(out)
	return out
}

type chordMatch struct {
	root     int
	chord    *chordDef
	matched  []int
	coverage float64
	score    float64
}

// DetectChord names the chord formed by keys, for example "Cmaj7", "Am7/C" or
// "D7(#9)". A single distinct key yields its pitch class name and no keys
// yield "". With enforceRoot the lowest key is always taken as the root.
// Voicings no chord explains well fall back to overlapping triads ("C + Am")
// or to an interval listing such as "C(R 3 7)".
func DetectChord(keys []int, enforceRoot bool) string {
	sortedKeys := uniqueSorted(keys)
	if len(sortedKeys) == 0 {
		return ""
	}
	if len(sortedKeys) == 1 {
		return pitchClasses[pitchClass(sortedKeys[0])]
	}

	var pcs pitchSet
	for _, k := range sortedKeys {
		pcs.add(pitchClass(k))
	}
	bass := pitchClass(sortedKeys[0])

	if matches := analyzeChord(&pcs, enforceRoot, bass); len(matches) > 0 {
		best := matches[0]
		if best.score > 500 || best.coverage >= 0.8 {
			return chordName(best, &pcs, bass)
		}
	}

	switch triads := overlappingTriads(&pcs); {
	case len(triads) >= 2:
		return triads[0] + " + " + triads[1]
	case len(triads) == 1:
		return triads[0]
	}

	root := bass
	if !enforceRoot {
		root = bestRoot(&pcs, bass)
	}
	return intervalAnalysis(&pcs, root)
}

func pitchClass(key int) int {
	return ((key % 12) + 12) % 12
}

func uniqueSorted(keys []int) []int {
	out := append([]int(nil), keys...)
	sort.Ints(out)
	n := 0
	for i, k := range out {
		if i == 0 || k != out[n-1] {
			out[n] = k
			n++
		}
	}
	return out[:n]
}

func analyzeChord(pcs *pitchSet, enforceRoot bool, bass int) []chordMatch {
	sortedPcs := pcs.sorted()
	roots := sortedPcs
	if enforceRoot {
		roots = []int{bass}
	}

	var matches []chordMatch
	for _, root := range roots {
		for i := range chordTable {
			chord := &chordTable[i]
			var matched []int
			for _, interval := range chord.intervals {
				if pcs.has[(root+interval)%12] {
					matched = append(matched, interval)
				}
			}

			coverage := float64(len(matched)) / float64(len(chord.intervals))
			if chord.requiresAll && coverage < 1 {
				continue
			}
			if !chord.requiresAll && coverage < 0.6 {
				continue
			}

			extra := len(sortedPcs) - len(matched)
			exactness := math.Max(0, 1-float64(extra)*0.2)
			matches = append(matches, chordMatch{
				root:     root,
				chord:    chord,
				matched:  matched,
				coverage: coverage,
				score:    coverage * chord.priority * exactness,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return compareMatches(matches[i], matches[j]) < 0
	})
	return matches
}

// compareMatches orders by score; scores within 1 point fall back to
// coverage, then to chord priority.
func compareMatches(a, b chordMatch) float64 {
	if math.Abs(a.score-b.score) < 1 {
		if math.Abs(a.coverage-b.coverage) < 0.1 {
			return b.chord.priority - a.chord.priority
		}
		return b.coverage - a.coverage
	}
	return b.score - a.score
}

func chordName(m chordMatch, pcs *pitchSet, bass int) string {
	rootName := pitchClasses[m.root]
	name := rootName + m.chord.symbol

	var matched [12]bool
	for _, interval := range m.matched {
		matched[(m.root+interval)%12] = true
	}

	var extensions []string
	for _, pc := range pcs.order {
		if matched[pc] {
			continue
		}
		if ext, ok := extensionSymbols[(pc-m.root+12)%12]; ok {
			extensions = append(extensions, ext)
		}
	}

	// A ninth on top of a seventh chord becomes a ninth chord.
	if i := indexOf(extensions, "9"); i >= 0 && strings.Contains(m.chord.symbol, "7") {
		switch m.chord.symbol {
		case "7":
			name = rootName + "9"
		case "maj7":
			name = rootName + "maj9"
		case "m7":
			name = rootName + "m9"
		}
		extensions = append(extensions[:i], extensions[i+1:]...)
	}
	if len(extensions) > 0 {
		name += "(" + strings.Join(extensions, "") + ")"
	}

	if bass != m.root {
		name += "/" + pitchClasses[bass]
	}
	return name
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func overlappingTriads(pcs *pitchSet) []string {
	qualities := []struct {
		third, fifth int
		suffix       string
	}{
		{4, 7, ""},
		{3, 7, "m"},
		{4, 8, "aug"},
		{3, 6, "dim"},
	}

	var triads []string
	for root := 0; root < 12; root++ {
		if !pcs.has[root] {
			continue
		}
		for _, q := range qualities {
			if pcs.has[(root+q.third)%12] && pcs.has[(root+q.fifth)%12] {
				triads = append(triads, pitchClasses[root]+q.suffix)
			}
		}
	}
	return triads
}

// bestRoot scores each pitch class as a candidate root by how common the
// intervals above it are, favoring the bass.
func bestRoot(pcs *pitchSet, bass int) int {
	sortedPcs := pcs.sorted()
	best, bestScore := sortedPcs[0], -1
	for _, root := range sortedPcs {
		score := 0
		for _, pc := range sortedPcs {
			switch (pc - root + 12) % 12 {
			case 0:
				score += 10
			case 7:
				score += 9
			case 3, 4:
				score += 8
			case 10, 11:
				score += 6
			case 2, 9:
				score += 4
			case 5:
				score += 3
			default:
				score++
			}
		}
		if root == bass {
			score += 5
		}
		if score > bestScore {
			best, bestScore = root, score
		}
	}
	return best
}

func intervalAnalysis(pcs *pitchSet, root int) string {
	sortedPcs := pcs.sorted()
	names := make([]string, len(sortedPcs))
	for i, pc := range sortedPcs {
		names[i] = intervalNames[(pc-root+12)%12]
	}
	return pitchClasses[root] + "(" + strings.Join(names, " ") + ")"
}
