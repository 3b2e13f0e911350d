package theme

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type RGB [3]uint8

type Palette struct {
	Name   string
	Colors []RGB
}

//go:embed palettes/*.gpl
var builtin embed.FS

// DefaultPalette is used when no palette is configured
const DefaultPalette = "plasma"

const gplMagic = "GIMP Palette"

// ParseGPL reads a GIMP palette. Each color line is "R G B [name]" with
// channels in 0..255; the name is ignored.
func ParseGPL(r io.Reader) (*Palette, error) {
	p := &Palette{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	sawMagic := false

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case !sawMagic:
			if line != gplMagic {
				return nil, errors.Errorf("line %d: want %q header, got %q", lineNo, gplMagic, line)
			}
			sawMagic = true
			continue
		case strings.HasPrefix(line, "Name:"):
			p.Name = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
			continue
		case strings.HasPrefix(line, "Columns:"):
			continue
		}

		c, err := parseColor(line)
		if err != nil {
			return nil, errors.Wrapf(err, "palette %s line %d", p.Name, lineNo)
		}
		p.Colors = append(p.Colors, c)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read palette")
	}

	if !sawMagic {
		return nil, errors.Errorf("missing %q header", gplMagic)
	}
	if len(p.Colors) == 0 {
		return nil, errors.Errorf("palette %s has no colors", p.Name)
	}
	return p, nil
}

func parseColor(line string) (RGB, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return RGB{}, errors.Errorf("%q: want R G B", line)
	}
	var c RGB
	for i := range c {
		v, err := strconv.ParseUint(fields[i], 10, 8)
		if err != nil {
			return RGB{}, errors.Errorf("%q: channel %q is not 0..255", line, fields[i])
		}
		c[i] = uint8(v)
	}
	return c, nil
}

// LoadGPL reads a GIMP palette file from disk
func LoadGPL(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseGPL(f)
}

// Builtin returns one of the embedded palettes by name
func Builtin(name string) (*Palette, error) {
	f, err := builtin.Open(path.Join("palettes", name+".gpl"))
	if err != nil {
		return nil, errors.Errorf("unknown palette %q (have %v)", name, BuiltinNames())
	}
	defer f.Close()
	return ParseGPL(f)
}

// BuiltinNames lists the embedded palettes
func BuiltinNames() []string {
	entries, _ := builtin.ReadDir("palettes")
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".gpl"))
	}
	sort.Strings(names)
	return names
}

// Resolve loads name as a builtin palette, or as a .gpl path
func Resolve(name string) (*Palette, error) {
	if name == "" {
		name = DefaultPalette
	}
	if strings.HasSuffix(name, ".gpl") {
		return LoadGPL(name)
	}
	return Builtin(name)
}

func MustResolve(name string) *Palette {
	p, err := Resolve(name)
	if err != nil {
		panic(fmt.Sprintf("failed to load palette %s: %v", name, err))
	}
	return p
}

// Lookup maps norm (clamped to 0..1) onto the palette, blending the two
// nearest colors.
func (p *Palette) Lookup(norm float64) RGB {
	last := len(p.Colors) - 1
	if last == 0 || norm <= 0 {
		return p.Colors[0]
	}
	if norm >= 1 {
		return p.Colors[last]
	}

	pos := norm * float64(last)
	i := int(pos)
	return p.Colors[i].blend(p.Colors[i+1], pos-float64(i))
}

// blend moves t (0..1) of the way from c to o, truncating each channel.
func (c RGB) blend(o RGB, t float64) RGB {
	var out RGB
	for i := range out {
		out[i] = uint8(float64(c[i]) + (float64(o[i])-float64(c[i]))*t)
	}
	return out
}
