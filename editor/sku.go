package editor

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/princinho/sahoadmin/utils"
)

const skuPrefix = "SKU"

// SKUGenerator suggests SKUs of the form SKU + first three title letters +
// a number in 100..999, e.g. SKURED482.
type SKUGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSKUGenerator(src rand.Source) *SKUGenerator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &SKUGenerator{rnd: rand.New(src)}
}

// TitlePart is the first three non-space characters of the title,
// upper-cased with accents removed.
func TitlePart(title string) string {
	var b strings.Builder
	n := 0
	for _, r := range utils.StripMarks(title) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		if n++; n == 3 {
			break
		}
	}
	return b.String()
}

// Suggest returns a SKU for title, retrying a few times to avoid SKUs for
// which taken reports true. An empty title gets no suggestion.
func (g *SKUGenerator) Suggest(title string, taken func(string) bool) string {
	part := TitlePart(title)
	if part == "" {
		return ""
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	var sku string
	for range 20 {
		sku = skuPrefix + part + strconv.Itoa(100+g.rnd.IntN(900))
		if taken == nil || !taken(sku) {
			break
		}
	}
	return sku
}
