package chomsky

import (
	"errors"
	"io"
)

// An Option to modify the behaviour of a Pipeline.
type Option func(p *Pipeline) error

// Trace writes the productions produced by each stage to w.
func Trace(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.trace = w
		return nil
	}
}

// FreshPrefix sets the prefix of nonterminals introduced by the pipeline.
//
// The default is "X".
func FreshPrefix(prefix string) Option {
	return func(p *Pipeline) error {
		if prefix == "" {
			return errors.New("fresh nonterminal prefix must not be empty")
		}
		p.prefix = prefix
		return nil
	}
}

// Stages replaces the pipeline's stages.
//
// The result of a custom pipeline is not checked for Chomsky Normal Form.
func Stages(stages ...Stage) Option {
	return func(p *Pipeline) error {
		p.stages = append([]Stage(nil), stages...)
		p.check = false
		return nil
	}
}
