// Package exercises generates individualized Canvas assignments from a
// LaTeX exercise bank. Exercise ids are combined into variant specs, the
// project "extract.lua" hook renders a spec to LaTeX and the result is
// converted by pandoc into the assignment description.
package exercises

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

// Variant is one generated problem set and the students who will see it.
// Nil StudentIds means the variant is visible to the whole course.
type Variant struct {
	Title      string
	Spec       string
	StudentIds []int
}

// Specs builds one variant spec per combination of the exercise pools,
// for example `--prefix="<p>" 2524 1331` for pools [[2524], [1331]].
// The prefix option is always present, even when empty.
func Specs(pools [][]string, prefix string) []string {
	combos := [][]string{nil}
	for _, pool := range pools {
		var next [][]string
		for _, combo := range combos {
			for _, id := range pool {
				c := make([]string, len(combo), len(combo)+1)
				copy(c, combo)
				next = append(next, append(c, id))
			}
		}
		combos = next
	}

	specs := make([]string, len(combos))
	for i, combo := range combos {
		specs[i] = fmt.Sprintf(`--prefix="%s" %s`, prefix, strings.Join(combo, " "))
	}
	return specs
}

// Split divides the items into n chunks of near equal sizes. The chunk
// bounds are fractional positions rounded half to even, so the sizes
// differ by at most one and concatenating the chunks restores the input.
func Split[T any](items []T, n int) [][]T {
	chunks := make([][]T, 0, n)
	delta := float64(len(items)) / float64(n)
	position := 0.0
	for k := 0; k < n; k++ {
		i := int(math.RoundToEven(position))
		j := int(math.RoundToEven(position + delta))
		chunks = append(chunks, items[i:j])
		position += delta
	}
	return chunks
}

// Assign titles the specs "A", "B", ... in order and divides the
// students between them, each variant is later published with an
// override for its chunk. A single spec gets no student list at all,
// the assignment stays visible to the whole course.
// The students slice is not modified. A nil rnd falls back to a
// time-seeded source.
func Assign(specs []string, students []int, rnd *rand.Rand) []Variant {
	if len(specs) == 1 {
		return []Variant{{Title: title(0), Spec: specs[0]}}
	}

	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	shuffled := make([]int, len(students))
	copy(shuffled, students)
	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	variants := make([]Variant, 0, len(specs))
	for i, chunk := range Split(shuffled, len(specs)) {
		variants = append(variants, Variant{Title: title(i), Spec: specs[i], StudentIds: chunk})
	}
	return variants
}

func title(i int) string {
	return string(rune('A' + i))
}
