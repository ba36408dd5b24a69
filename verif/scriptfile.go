package verif

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/memverif/mem/sram"
	"github.com/sarchlab/memverif/sim"
)

// number is an unsigned integer written in decimal, or with a 0x, 0o or 0b
// prefix. Underscores may separate digits.
type number uint64

func (n *number) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: expected a number", node.Line)
	}

	text := strings.ReplaceAll(strings.TrimSpace(node.Value), "_", "")

	v, err := strconv.ParseUint(text, 0, 64)
	if err != nil {
		return errors.Errorf("line %d: %q is not an unsigned number",
			node.Line, node.Value)
	}

	*n = number(v)

	return nil
}

type scriptFile struct {
	AddressWidthBits *int    `yaml:"address_width_bits"`
	DataWidthBits    *int    `yaml:"data_width_bits"`
	ClockPeriod      *number `yaml:"clock_period"`
	TimeUnit         string  `yaml:"time_unit"`
	ResetHoldPeriods *number `yaml:"reset_hold_periods"`
	ReadDuringWrite  string  `yaml:"read_during_write"`

	Steps []stepFile `yaml:"steps"`
}

type stepFile struct {
	Kind     string  `yaml:"kind"`
	Address  *number `yaml:"address"`
	Data     *number `yaml:"data"`
	Expected *number `yaml:"expected"`
}

// LoadScript reads a script from a YAML or JSON file.
func LoadScript(path string) (Script, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Script{}, errors.Wrapf(err, "reading script %s", path)
	}

	script, err := ParseScript(content)
	if err != nil {
		return Script{}, errors.Wrapf(err, "parsing script %s", path)
	}

	return script, nil
}

// ParseScript decodes a script. Parameters that are left out take their
// values from DefaultConfig. The result is not validated; Bench does that
// before running.
func ParseScript(content []byte) (Script, error) {
	var f scriptFile

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	if err := dec.Decode(&f); err != nil {
		return Script{}, configError("script", err)
	}

	script := Script{Config: DefaultConfig()}
	cfg := &script.Config

	if f.AddressWidthBits != nil {
		cfg.AddressWidthBits = *f.AddressWidthBits
	}

	if f.DataWidthBits != nil {
		cfg.DataWidthBits = *f.DataWidthBits
	}

	if f.ClockPeriod != nil {
		cfg.ClockPeriod = sim.VTime(*f.ClockPeriod)
	}

	if f.TimeUnit != "" {
		cfg.TimeUnit = f.TimeUnit
	}

	if f.ResetHoldPeriods != nil {
		cfg.ResetHoldPeriods = uint64(*f.ResetHoldPeriods)
	}

	policy, err := sram.ParseReadDuringWrite(f.ReadDuringWrite)
	if err != nil {
		return Script{}, configError("read_during_write", err)
	}
	cfg.ReadDuringWrite = policy

	for i, sf := range f.Steps {
		step, err := sf.toStep(i)
		if err != nil {
			return Script{}, err
		}

		script.Steps = append(script.Steps, step)
	}

	return script, nil
}

func (sf stepFile) toStep(i int) (Step, error) {
	field := func(name string) string {
		return fmt.Sprintf("steps[%d].%s", i, name)
	}

	kind, err := ParseKind(sf.Kind)
	if err != nil {
		return Step{}, configError(field("kind"), err)
	}

	if sf.Address == nil {
		return Step{}, configError(field("address"), errors.New("missing"))
	}

	step := Step{Kind: kind, Address: uint64(*sf.Address)}

	switch kind {
	case KindWrite:
		if sf.Data == nil {
			return Step{}, configError(field("data"), errors.New("missing"))
		}

		step.Data = uint64(*sf.Data)

		if sf.Expected != nil {
			return Step{}, configError(field("expected"),
				errors.New("write steps cannot carry an expectation"))
		}
	case KindRead:
		if sf.Data != nil {
			return Step{}, configError(field("data"),
				errors.New("read steps cannot carry data"))
		}

		if sf.Expected != nil {
			exp := uint64(*sf.Expected)
			step.Expected = &exp
		}
	}

	return step, nil
}
