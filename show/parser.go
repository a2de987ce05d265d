package show

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/robmorgan/pifish/cuelist"
	"github.com/robmorgan/pifish/effect"
	"github.com/robmorgan/pifish/fixture"
	"github.com/robmorgan/pifish/logger"
	"github.com/robmorgan/pifish/utils"
	"github.com/sirupsen/logrus"
)

// MaxExpandedCues bounds how many cues a single jitter or fade line may expand to.
const MaxExpandedCues = 10000

const (
	number = `([-+]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?)`
	ident  = `([A-Za-z_]\w*)`
	quoted = `"([^"]*)"`
)

// Lines are matched after whitespace outside of quotes has been removed.
var (
	ignorePattern      = regexp.MustCompile(`^ignore\(` + ident + `\)$`)
	motorPattern       = regexp.MustCompile(`^` + ident + `=motor\((\d+),` + quoted + `\)$`)
	motorActionPattern = regexp.MustCompile(`^motorAction\(` + ident + `,(HIGH|LOW),` + number + `\)$`)
	soundPattern       = regexp.MustCompile(`^sound\(` + quoted + `,` + number + `\)$`)
	offsetPattern      = regexp.MustCompile(`^offset\(` + number + `\)$`)
	volumePattern      = regexp.MustCompile(`^volume\(` + number + `,` + number + `\)$`)
	priorityPattern    = regexp.MustCompile(`^priority\(` + number + `\)$`)
	jitterPattern      = regexp.MustCompile(`^jitter\(` + ident + `,` + number + `,` + number + `,` + number + `\)$`)
	fadePattern        = regexp.MustCompile(`^fade\(` + number + `,` + number + `,` + number + `,` + number + `\)$`)
)

type parser struct {
	rig    *Rig
	source string

	motors  map[string]*fixture.Motor
	ignored map[string]bool
	offset  float64

	cues        []cuelist.Cue
	priority    float64
	hasPriority bool
}

// Parse reads a show document.
//
// Each line is one statement. Motor aliases must be declared before they are used and offset() shifts every later
// motor, sound and jitter cue. Volume and fade cues are not shifted by offset(). Blank lines, # comments and lines
// that are not statements are skipped.
func Parse(r io.Reader, source string, rig *Rig) (*Show, error) {
	p := &parser{
		rig:     rig,
		source:  source,
		motors:  make(map[string]*fixture.Motor),
		ignored: make(map[string]bool),
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := compact(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := p.parseLine(line); err != nil {
			return nil, &LoadError{Source: source, Line: lineNo, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	s, err := p.build()
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return s, nil
}

func (p *parser) parseLine(line string) error {
	if m := ignorePattern.FindStringSubmatch(line); m != nil {
		p.ignored[m[1]] = true
		return nil
	}

	if m := motorPattern.FindStringSubmatch(line); m != nil {
		pin, err := strconv.Atoi(m[2])
		if err != nil {
			return err
		}
		motor, err := p.rig.Fixtures.Motor(pin, m[3])
		if err != nil {
			return err
		}
		p.motors[m[1]] = motor
		return nil
	}

	if m := motorActionPattern.FindStringSubmatch(line); m != nil {
		pos, err := fixture.ParsePosition(m[2])
		if err != nil {
			return err
		}
		v, err := parseFloats(m[3])
		if err != nil {
			return err
		}
		return p.motorCue(m[1], pos, v[0]+p.offset)
	}

	if m := soundPattern.FindStringSubmatch(line); m != nil {
		v, err := parseFloats(m[2])
		if err != nil {
			return err
		}
		clip, err := p.rig.Sounds.Load(m[1])
		if err != nil {
			return err
		}
		return p.add(cuelist.NewSoundCue(clip, v[0]+p.offset))
	}

	if m := offsetPattern.FindStringSubmatch(line); m != nil {
		v, err := parseFloats(m[1])
		if err != nil {
			return err
		}
		p.offset += v[0]
		return nil
	}

	if m := volumePattern.FindStringSubmatch(line); m != nil {
		v, err := parseFloats(m[1], m[2])
		if err != nil {
			return err
		}
		return p.add(cuelist.NewVolumeCue(utils.Clamp(v[0], 0, 1), v[1]))
	}

	if m := priorityPattern.FindStringSubmatch(line); m != nil {
		if p.hasPriority {
			return ErrDuplicatePriority
		}
		v, err := parseFloats(m[1])
		if err != nil {
			return err
		}
		p.priority = v[0]
		p.hasPriority = true
		return nil
	}

	if m := jitterPattern.FindStringSubmatch(line); m != nil {
		v, err := parseFloats(m[2], m[3], m[4])
		if err != nil {
			return err
		}
		return p.jitter(m[1], v[0], v[1], v[2])
	}

	if m := fadePattern.FindStringSubmatch(line); m != nil {
		v, err := parseFloats(m[1], m[2], m[3], m[4])
		if err != nil {
			return err
		}
		return p.fade(v[0], v[1], v[2], v[3])
	}

	logger.GetProjectLogger().WithFields(logrus.Fields{"show": p.source, "line": line}).Debug("Skipping unrecognised line")
	return nil
}

func (p *parser) motorCue(alias string, pos fixture.Position, t float64) error {
	if p.ignored[alias] {
		return nil
	}
	motor, ok := p.motors[alias]
	if !ok {
		return &UnresolvedActuatorError{Alias: alias}
	}
	return p.add(cuelist.NewMotorCue(motor, pos, t))
}

// jitter flaps a motor HIGH and LOW every step seconds from start until end, starting HIGH.
func (p *parser) jitter(alias string, start, step, end float64) error {
	if step <= 0 {
		return ErrInvalidJitter
	}
	if end < start {
		return nil
	}
	count := math.Floor((end-start)/step) + 1
	if start+step == start || !(count <= MaxExpandedCues) {
		return ErrTooManyCues
	}

	pos := fixture.High
	for i := 0; i < int(count); i++ {
		t := start + float64(i)*step
		if err := p.motorCue(alias, pos, t+p.offset); err != nil {
			return err
		}
		if pos == fixture.High {
			pos = fixture.Low
		} else {
			pos = fixture.High
		}
	}
	return nil
}

func (p *parser) fade(from, to, start, duration float64) error {
	if duration < 0 {
		return ErrNegativeDuration
	}
	if !(duration*effect.StepsPerSecond < MaxExpandedCues) {
		return ErrTooManyCues
	}

	f := effect.NewFade(utils.Clamp(from, 0, 1), utils.Clamp(to, 0, 1), duration)
	for _, step := range f.Steps() {
		if err := p.add(cuelist.NewVolumeCue(step.Value, start+step.Time)); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) add(c cuelist.Cue) error {
	if c.Time < 0 {
		return ErrNegativeTime
	}
	p.cues = append(p.cues, c)
	return nil
}

func (p *parser) build() (*Show, error) {
	if len(p.cues) == 0 {
		return nil, ErrNoCues
	}

	cuelist.Sort(p.cues)
	length := p.cues[len(p.cues)-1].Time - p.cues[0].Time

	priority := length
	if p.hasPriority {
		priority = p.priority
	}
	if priority <= 0 {
		return nil, ErrInvalidPriority
	}

	return newShow(p.source, p.cues, priority, length), nil
}

// compact removes whitespace that is not inside double quotes.
func compact(line string) string {
	var b strings.Builder
	inQuotes := false
	for _, r := range line {
		if r == '"' {
			inQuotes = !inQuotes
		}
		if !inQuotes && unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parseFloats parses numbers the line patterns have already matched. Only values too large for a float64 fail.
func parseFloats(fields ...string) ([]float64, error) {
	out := make([]float64, 0, len(fields))
	for _, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidNumber, field)
		}
		out = append(out, f)
	}
	return out, nil
}
