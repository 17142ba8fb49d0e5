package main

import "strconv"

// optionalFloat64Flag and friends implement pflag.Value, giving each CLI
// override flag tri-state behavior (unset / explicitly set) instead of
// pflag's built-in zero-value defaults, so config.ApplyOverrides can tell
// "not passed" apart from "set to 0".

type optionalFloat64Flag struct {
	target **float64
}

func newFloat64Flag(target **float64) *optionalFloat64Flag {
	return &optionalFloat64Flag{target: target}
}

func (f *optionalFloat64Flag) String() string {
	if *f.target == nil {
		return ""
	}
	return strconv.FormatFloat(**f.target, 'g', -1, 64)
}

func (f *optionalFloat64Flag) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f.target = &v
	return nil
}

func (f *optionalFloat64Flag) Type() string { return "float64" }

type optionalIntFlag struct {
	target **int
}

func newIntFlag(target **int) *optionalIntFlag {
	return &optionalIntFlag{target: target}
}

func (f *optionalIntFlag) String() string {
	if *f.target == nil {
		return ""
	}
	return strconv.Itoa(**f.target)
}

func (f *optionalIntFlag) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f.target = &v
	return nil
}

func (f *optionalIntFlag) Type() string { return "int" }

type optionalStringFlag struct {
	target **string
}

func newStringFlag(target **string) *optionalStringFlag {
	return &optionalStringFlag{target: target}
}

func (f *optionalStringFlag) String() string {
	if *f.target == nil {
		return ""
	}
	return **f.target
}

func (f *optionalStringFlag) Set(s string) error {
	*f.target = &s
	return nil
}

func (f *optionalStringFlag) Type() string { return "string" }
