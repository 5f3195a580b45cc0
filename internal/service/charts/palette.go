package charts

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"
)

const hexDigits = "0123456789ABCDEF"

// Source defines the random source a Palette draws from.
type Source interface {
	Float64() float64
}

// Palette generates random chart colours.
type Palette struct {
	mu  sync.Mutex
	src Source
}

// NewPalette initializes a Palette, a nil src is replaced by a time seeded generator.
func NewPalette(src Source) *Palette {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Palette{src: src}
}

func (p *Palette) float() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.src.Float64()
}

// RGBA picks one random colour and renders it once per given alpha.
func (p *Palette) RGBA(alphas ...string) []string {
	r := int(math.Round(p.float() * 255))
	g := int(math.Round(p.float() * 255))
	b := int(math.Round(p.float() * 255))
	res := make([]string, 0, len(alphas))
	for _, a := range alphas {
		res = append(res, fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, a))
	}
	return res
}

// Hex returns a random colour in #RRGGBB notation.
func (p *Palette) Hex() string {
	var sb strings.Builder
	sb.WriteByte('#')
	for i := 0; i < 6; i++ {
		sb.WriteByte(hexDigits[int(math.Round(p.float()*15))])
	}
	return sb.String()
}
