package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/mecrobet/marga/internal/domain"
)

// levelValue adapts domain.Level to pflag.Value so bad input is rejected
// while flags are parsed.
type levelValue domain.Level

func (v *levelValue) String() string { return string(*v) }
func (v *levelValue) Type() string   { return "level" }

func (v *levelValue) Set(s string) error {
	l, err := domain.ParseLevel(s)
	if err != nil {
		return err
	}
	*v = levelValue(l)
	return nil
}

type unitValue domain.DurationUnit

func (v *unitValue) String() string { return string(*v) }
func (v *unitValue) Type() string   { return "unit" }

func (v *unitValue) Set(s string) error {
	u, err := domain.ParseDurationUnit(s)
	if err != nil {
		return err
	}
	*v = unitValue(u)
	return nil
}

// roadmapFlags holds the generate form inputs.
type roadmapFlags struct {
	topic  string
	amount int
	unit   unitValue
	level  levelValue
	images []string
}

func newRoadmapFlags() *roadmapFlags {
	return &roadmapFlags{
		amount: domain.DefaultDurationAmount,
		unit:   unitValue(domain.DefaultDurationUnit),
		level:  levelValue(domain.DefaultLevel),
	}
}

func (f *roadmapFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.topic, "topic", "", "Topic to study")
	fs.IntVar(&f.amount, "amount", f.amount, "Duration amount")
	fs.Var(&f.unit, "unit", "Duration unit: "+joinUnits())
	fs.Var(&f.level, "level", "Skill level: "+joinLevels())
	fs.StringArrayVar(&f.images, "image", nil, "Reference image to include (repeatable)")
}

func (f *roadmapFlags) duration() domain.Duration {
	return domain.Duration{Amount: f.amount, Unit: domain.DurationUnit(f.unit)}
}

func joinLevels() string {
	names := make([]string, len(domain.Levels))
	for i, l := range domain.Levels {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}

func joinUnits() string {
	names := make([]string, len(domain.DurationUnits))
	for i, u := range domain.DurationUnits {
		names[i] = string(u)
	}
	return strings.Join(names, ", ")
}
