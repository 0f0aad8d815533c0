package coating

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/unit"
)

// Measurement is a fixed-angle reflectance scan: wavelength samples
// paired with measured power reflectance, all taken at one incidence
// angle.
type Measurement struct {
	Wavelength  []unit.Length
	Reflectance []float64
	Incidence   unit.Angle
}

// LoadMeasurementTable reads a two-column reflectance table: wavelength
// in nanometres and reflectance in percent, whitespace separated, with
// exactly one header row. The incidence angle applies to the whole
// table and is supplied by the caller.
func LoadMeasurementTable(r io.Reader, incidence unit.Angle) (*Measurement, error) {
	m := &Measurement{Incidence: incidence}

	sc := bufio.NewScanner(r)
	line := 0
	headerSkipped := false
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if !headerSkipped {
			headerSkipped = true
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d has %d columns, want 2", ErrInput, line, len(fields))
		}
		wl, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d wavelength %q: %v", ErrInput, line, fields[0], err)
		}
		refl, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d reflectance %q: %v", ErrInput, line, fields[1], err)
		}
		if wl <= 0 {
			return nil, fmt.Errorf("%w: line %d wavelength %v nm is not positive", ErrInput, line, wl)
		}

		m.Wavelength = append(m.Wavelength, unit.Length(wl*unit.Nano))
		m.Reflectance = append(m.Reflectance, refl/100)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}
	if len(m.Wavelength) == 0 {
		return nil, fmt.Errorf("%w: table has no data rows", ErrInput)
	}
	return m, nil
}
