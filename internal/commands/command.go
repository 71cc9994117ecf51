package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/dayplanner/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeQuick  Type = "quick"
	TypeStart  Type = "start"
	TypeDone   Type = "done"
	TypeAdjust Type = "adjust"
	TypeReset  Type = "reset"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

// Defaults applied by /add when an option is omitted.
const (
	DefaultDurationMinutes = 30
	DefaultPriority        = model.PriorityMedium
	DefaultCategory        = model.CategoryWork
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Spec model.TaskSpec
}

// QuickArgs names a suggestion either by text or by its 1-based position.
type QuickArgs struct {
	Name string
}

// DoneArgs targets the task at Index (0-based). Current means "whatever is active".
type DoneArgs struct {
	Index   int
	Current bool
}

type Command struct {
	Type  Type
	Raw   string
	Add   *AddArgs
	Quick *QuickArgs
	Done  *DoneArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeQuick:
		return parseQuick(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeStart, TypeAdjust, TypeReset:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd reads "name words [dur:N|Nm] [pri:P] [cat:C] [note: free text]".
// Everything after note: is taken verbatim as the notes.
func parseAdd(raw string, args []string) (Command, error) {
	spec := model.TaskSpec{
		DurationMinutes: DefaultDurationMinutes,
		Priority:        DefaultPriority,
		Category:        DefaultCategory,
	}
	var name []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		key, value, hasKey := strings.Cut(arg, ":")
		lower := strings.ToLower(key)
		switch {
		case hasKey && (lower == "note" || lower == "notes"):
			spec.Notes = strings.TrimSpace(strings.Join(append([]string{value}, args[i+1:]...), " "))
			i = len(args)
		case hasKey && (lower == "dur" || lower == "d"):
			minutes, err := parseMinutes(value)
			if err != nil {
				return Command{}, err
			}
			spec.DurationMinutes = minutes
		case hasKey && (lower == "pri" || lower == "p"):
			p, err := model.ParsePriority(value)
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
			}
			spec.Priority = p
		case hasKey && (lower == "cat" || lower == "c"):
			c, err := model.ParseCategory(value)
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
			}
			spec.Category = c
		case !hasKey && isMinutesToken(arg):
			minutes, err := parseMinutes(arg)
			if err != nil {
				return Command{}, err
			}
			spec.DurationMinutes = minutes
		default:
			name = append(name, arg)
		}
	}
	spec.Name = strings.TrimSpace(strings.Join(name, " "))
	if spec.Name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a name"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Spec: spec}}, nil
}

func parseQuick(raw string, args []string) (Command, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "quick requires a suggestion"}
	}
	if n, err := strconv.Atoi(name); err == nil {
		suggestions := model.QuickAddSuggestions()
		if n < 1 || n > len(suggestions) {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("suggestion %d out of range 1-%d", n, len(suggestions))}
		}
		name = suggestions[n-1]
	}
	return Command{Type: TypeQuick, Raw: raw, Quick: &QuickArgs{Name: name}}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	switch len(args) {
	case 0:
		return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Current: true}}, nil
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("done expects a task number, got %q", args[0])}
		}
		return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Index: n - 1}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done takes at most one task number"}
	}
}

// isMinutesToken matches a bare "45m" duration.
func isMinutesToken(arg string) bool {
	trimmed := strings.TrimSuffix(strings.ToLower(arg), "m")
	if trimmed == strings.ToLower(arg) {
		return false
	}
	_, err := strconv.Atoi(trimmed)
	return err == nil
}

func parseMinutes(value string) (int, error) {
	trimmed := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(value)), "m")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid duration %q", value)}
	}
	return n, nil
}
