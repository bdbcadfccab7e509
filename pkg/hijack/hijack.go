package hijack

import (
	"iter"
	"path/filepath"

	"github.com/arthur-debert/jackman/pkg/alias"
	"github.com/arthur-debert/jackman/pkg/errors"
	"github.com/arthur-debert/jackman/pkg/logging"
	"github.com/arthur-debert/jackman/pkg/rspfile"
	"github.com/arthur-debert/jackman/pkg/rules"
	"github.com/arthur-debert/jackman/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultMaxArgumentLength is the longest argument passed to the wrapped tool
const DefaultMaxArgumentLength = 240

// Options configures one invocation
type Options struct {
	// WorkingDir is the absolute directory the tool runs in
	WorkingDir string

	// Prefix is the alias farm directory, relative to WorkingDir unless absolute
	Prefix string

	// RewriteResponseFiles aliases the contents of response files too
	RewriteResponseFiles bool

	// MaxArgumentLength bounds every emitted token
	MaxArgumentLength int

	// DigestSize is the identifier digest length in bytes
	DigestSize int

	// VerifyAliases rejects existing aliases pointing somewhere unexpected
	VerifyAliases bool

	// Vocabulary drives the rule table
	Vocabulary rules.Vocabulary
}

// DefaultOptions returns options for workingDir with the default vocabulary
func DefaultOptions(workingDir, prefix string) Options {
	return Options{
		WorkingDir:        workingDir,
		Prefix:            prefix,
		MaxArgumentLength: DefaultMaxArgumentLength,
		DigestSize:        alias.DigestSize,
		Vocabulary:        rules.DefaultVocabulary(),
	}
}

// Hijacker rewrites argument vectors for one invocation
type Hijacker struct {
	opts   Options
	farm   *alias.Farm
	rsp    *rspfile.Rewriter
	table  []rules.Rule
	logger zerolog.Logger
}

// New creates a Hijacker working on fsys
func New(fsys types.FS, opts Options) (*Hijacker, error) {
	if !filepath.IsAbs(opts.WorkingDir) {
		return nil, errors.Newf(errors.ErrInvalidInput, "working directory must be absolute, got %q", opts.WorkingDir)
	}
	if len(opts.Prefix) < 2 {
		return nil, errors.Newf(errors.ErrInvalidInput, "alias prefix is too short, got: %q", opts.Prefix)
	}
	if opts.MaxArgumentLength <= 0 {
		opts.MaxArgumentLength = DefaultMaxArgumentLength
	}
	if opts.DigestSize == 0 {
		opts.DigestSize = alias.DigestSize
	}
	namer, err := alias.NewNamer(opts.DigestSize)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid digest size")
	}
	if err := opts.Vocabulary.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid rule vocabulary")
	}

	farm := alias.NewFarm(fsys, alias.FarmOptions{
		WorkingDir: opts.WorkingDir,
		Prefix:     opts.Prefix,
		Namer:      namer,
		Verify:     opts.VerifyAliases,
	})

	return &Hijacker{
		opts:   opts,
		farm:   farm,
		rsp:    rspfile.New(fsys, farm, opts.MaxArgumentLength),
		table:  rules.Table(opts.Vocabulary),
		logger: logging.GetLogger("hijack"),
	}, nil
}

// Farm returns the alias farm used by the Hijacker
func (h *Hijacker) Farm() *alias.Farm {
	return h.farm
}

// All yields the rewritten tokens of args in order. Aliases are created as
// the sequence is consumed. Iteration ends after the first error.
func (h *Hijacker) All(args []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for i := 0; i < len(args); {
			c, err := rules.Classify(h.table, args, i)
			if err != nil {
				yield("", err)
				return
			}
			i += c.Consumed

			h.logger.Trace().
				Str("token", c.Token).
				Str("rule", c.Rule).
				Stringer("kind", c.Kind).
				Msg("Classified")

			for _, lead := range c.Lead {
				if !yield(lead, nil) {
					return
				}
			}
			if c.Exhausted {
				h.logger.Debug().Str("flag", c.Token).Msg("Path flag without value, stopping")
				return
			}

			switch c.Kind {
			case rules.Droppable:
				h.logger.Debug().Str("token", c.Token).Msg("Dropped intermediate file")
				continue
			case rules.Passthrough, rules.FlagPassthrough:
				if !yield(c.Token, nil) {
					return
				}
				continue
			}

			rewritten, err := h.alias(c)
			if err != nil {
				yield("", err)
				return
			}
			if !yield(rewritten, nil) {
				return
			}
		}
	}
}

// Rewrite returns the full rewritten argument vector, checked against the
// maximum argument length. On error nothing is returned.
func (h *Hijacker) Rewrite(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for token, err := range h.All(args) {
		if err != nil {
			return nil, err
		}
		out = append(out, token)
	}
	if err := CheckLengths(out, h.opts.MaxArgumentLength); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *Hijacker) alias(c rules.Classification) (string, error) {
	value := c.Value

	switch c.Kind {
	case rules.ResponseFileArgument:
		if h.opts.RewriteResponseFiles {
			rewritten, err := h.rsp.Rewrite(value)
			if err != nil {
				return "", err
			}
			value = rewritten
		}
		fallthrough
	case rules.FileArgument:
		aliased, err := h.farm.EnsureFile(value)
		if err != nil {
			return "", err
		}
		return c.Marker + aliased, nil
	case rules.DirectoryArgument:
		aliased, err := h.farm.Ensure(value)
		if err != nil {
			return "", err
		}
		if c.Absolute {
			aliased = h.farm.Resolve(aliased)
		}
		return c.Marker + aliased, nil
	}

	return "", errors.Newf(errors.ErrInternal, "classification %s carries no path", c.Kind)
}
