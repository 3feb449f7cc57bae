package codegen

import (
	"path"

	"github.com/creasty/defaults"
)

// StepCounts are the pipeline lengths a Process method is generated for. A
// method for n runs n-1 steps.
var StepCounts = []int{3, 4}

// Options configures generation.
type Options struct {
	// OptionPackage is the import path of the runtime package whose Option
	// type annotated fields must use.
	OptionPackage string `default:"github.com/ecordell/pipelinegen/pipeline"`

	// Header is written as the package comment of the generated file.
	Header string `default:"Code generated by github.com/ecordell/pipelinegen. DO NOT EDIT."`

	// MethodPrefix is followed by the step count in generated method names.
	MethodPrefix string `default:"Process"`
}

// NewOptions returns Options with every unset field at its default.
func NewOptions() (Options, error) {
	var opts Options
	if err := defaults.Set(&opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// withDefaults fills the unset fields of o.
func (o Options) withDefaults() (Options, error) {
	if err := defaults.Set(&o); err != nil {
		return Options{}, err
	}
	return o, nil
}

// optionName is the way Option is written in messages, e.g. pipeline.Option.
func (o Options) optionName() string {
	return path.Base(o.OptionPackage) + ".Option"
}
