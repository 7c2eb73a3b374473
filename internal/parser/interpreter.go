package parser

import (
	"context"

	"go.uber.org/zap"
)

// AIParser is the external language-model collaborator. Implementations
// make a network call with a bounded timeout; any transport failure,
// malformed response, or schema violation is an error.
type AIParser interface {
	ParseInstruction(ctx context.Context, text string) (Command, error)
}

// Interpreter composes the parsing pipeline. The AI path is best-effort:
// when it is requested but fails for any reason the interpreter falls back
// to the rule-based path without surfacing the failure, so producing a
// command never depends on the external service.
type Interpreter struct {
	ai     AIParser
	logger *zap.Logger
}

// NewInterpreter creates an interpreter. ai may be nil, in which case every
// parse uses the rule-based path regardless of the useAI flag.
func NewInterpreter(ai AIParser, logger *zap.Logger) *Interpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interpreter{ai: ai, logger: logger}
}

// Parse turns one instruction into a canonical command. The AI path is
// attempted first only when useAI is set and a client is configured.
func (i *Interpreter) Parse(ctx context.Context, text string, useAI bool) Command {
	if useAI && i.ai != nil {
		cmd, err := i.ai.ParseInstruction(ctx, text)
		if err == nil {
			return cmd
		}
		i.logger.Warn("ai parse failed, falling back to rules",
			zap.Error(err))
	}
	return ParseRule(text)
}

// ParseAll splits a multi-operation instruction and parses each operation
// independently. It always returns at least one command: text with no
// recognizable operations parses as a single instruction.
func (i *Interpreter) ParseAll(ctx context.Context, text string, useAI bool) []Command {
	ops := SplitOperations(text)
	if len(ops) == 0 {
		ops = []string{text}
	}

	cmds := make([]Command, 0, len(ops))
	for _, op := range ops {
		cmds = append(cmds, i.Parse(ctx, op, useAI))
	}
	return cmds
}

// ParseRule runs the deterministic rule-based path: normalize, classify
// action and shape, extract dimensions and pattern. It has no error cases;
// unrecognized text yields a create_feature command with empty parameters.
func ParseRule(raw string) Command {
	text := Normalize(raw)
	action := ClassifyAction(text)
	params, pattern := Extract(text, action)

	return Command{
		Action:  action,
		Shape:   ClassifyShape(text),
		Params:  params,
		Pattern: pattern,
		Source:  SourceRule,
	}
}
