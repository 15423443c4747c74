package molds

import (
	"fmt"
	"sort"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/rangedcombat/common"
)

const curveSamples = 33

// Curve maps a normalized input in [0, 1] to a value in [0, 1]. It is either
// a list of [t, v] keys interpolated linearly, or a tengo expression in x
// that is sampled once when the mold loads. An empty curve is the identity.
type Curve struct {
	Keys       [][2]float64 `yaml:"keys"`
	Script     string       `yaml:"script"`
	ScriptFile string       `yaml:"script_file"`

	samples []float64
}

// Evaluate returns the curve value at x, clamped to [0, 1] on both axes.
func (c *Curve) Evaluate(x float64) float64 {
	x = common.Clamp01(x)
	if c == nil {
		return x
	}
	if len(c.samples) > 0 {
		return sampleAt(c.samples, x)
	}
	if len(c.Keys) > 0 {
		return common.Clamp01(keyAt(c.Keys, x))
	}
	return x
}

func (c *Curve) bake(l Loader) error {
	if len(c.Keys) > 0 {
		sort.Slice(c.Keys, func(i, j int) bool { return c.Keys[i][0] < c.Keys[j][0] })
	}

	src := strings.TrimSpace(c.Script)
	if src == "" && c.ScriptFile != "" {
		data, err := l.Load(c.ScriptFile)
		if err != nil {
			return fmt.Errorf("curve: load %s: %w", c.ScriptFile, err)
		}
		src = strings.TrimSpace(string(data))
	}
	if src == "" {
		c.samples = nil
		return nil
	}

	samples, err := sampleScript(src)
	if err != nil {
		return err
	}
	c.samples = samples
	return nil
}

// sampleScript evaluates a tengo expression over [0, 1]. The math module is
// imported as `math`.
func sampleScript(expr string) ([]float64, error) {
	script := tengo.NewScript([]byte("math := import(\"math\")\n__out := " + expr))
	script.SetImports(stdlib.GetModuleMap("math"))
	if err := script.Add("x", 0.0); err != nil {
		return nil, err
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("curve: compile %q: %w", expr, err)
	}

	out := make([]float64, curveSamples)
	for i := range out {
		x := float64(i) / float64(curveSamples-1)
		if err := compiled.Set("x", x); err != nil {
			return nil, err
		}
		if err := compiled.Run(); err != nil {
			return nil, fmt.Errorf("curve: run %q at x=%v: %w", expr, x, err)
		}
		out[i] = common.Clamp01(compiled.Get("__out").Float())
	}
	return out, nil
}

func sampleAt(samples []float64, x float64) float64 {
	if len(samples) == 1 {
		return samples[0]
	}
	pos := x * float64(len(samples)-1)
	i := int(pos)
	if i >= len(samples)-1 {
		return samples[len(samples)-1]
	}
	return common.Lerp(samples[i], samples[i+1], pos-float64(i))
}

func keyAt(keys [][2]float64, x float64) float64 {
	if x <= keys[0][0] {
		return keys[0][1]
	}
	last := keys[len(keys)-1]
	if x >= last[0] {
		return last[1]
	}
	for i := 1; i < len(keys); i++ {
		if x <= keys[i][0] {
			a, b := keys[i-1], keys[i]
			return common.Lerp(a[1], b[1], common.InverseLerp(a[0], b[0], x))
		}
	}
	return last[1]
}
