package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeList     Type = "list"
	TypeComplete Type = "complete"
	TypeRemove   Type = "remove"
	TypeEdit     Type = "edit"
	TypeShow     Type = "show"
	TypeExport   Type = "export"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Name        string
	Description *string
	Frequency   *uint32
}

type ListArgs struct {
	ActiveOnly bool
}

type CompleteArgs struct {
	Identifier string
}

type RemoveArgs struct {
	Identifier string
}

// EditArgs leaves a field untouched when its pointer is nil. Description and
// Frequency accept the literal "null" (any case) to clear the value.
type EditArgs struct {
	Identifier  string
	Name        *string
	Description *string
	Frequency   *string
	Active      *bool
}

type ShowArgs struct {
	Identifier string
}

type ExportArgs struct {
	Path string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	List     *ListArgs
	Complete *CompleteArgs
	Remove   *RemoveArgs
	Edit     *EditArgs
	Show     *ShowArgs
	Export   *ExportArgs
}

// Parse reads a one-line command such as "complete Meditate" or
// "/edit Read desc=null freq=5". A leading slash is optional.
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
	rest := strings.TrimSpace(raw[len(parts[0]):])

	switch Type(head) {
	case TypeAdd:
		if rest == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a name"}
		}
		return Command{Type: TypeAdd, Raw: input, Add: &AddArgs{Name: rest}}, nil
	case TypeList:
		return parseList(input, parts[1:])
	case TypeComplete:
		if rest == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "complete requires an identifier"}
		}
		return Command{Type: TypeComplete, Raw: input, Complete: &CompleteArgs{Identifier: rest}}, nil
	case TypeRemove:
		if rest == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "remove requires an identifier"}
		}
		return Command{Type: TypeRemove, Raw: input, Remove: &RemoveArgs{Identifier: rest}}, nil
	case TypeShow:
		if rest == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires an identifier"}
		}
		return Command{Type: TypeShow, Raw: input, Show: &ShowArgs{Identifier: rest}}, nil
	case TypeEdit:
		return parseEdit(input, parts[1:])
	case TypeExport:
		if rest == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "export requires a database path"}
		}
		return Command{Type: TypeExport, Raw: input, Export: &ExportArgs{Path: rest}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseList(raw string, args []string) (Command, error) {
	active := true
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "all":
			active = false
		case "active":
		default:
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("list accepts 'all' or 'active', got %q", args[0])}
		}
	}
	return Command{Type: TypeList, Raw: raw, List: &ListArgs{ActiveOnly: active}}, nil
}

// parseEdit takes every token before the first key=value pair as the
// identifier, so "edit Read books name=Reading" edits "Read books". After that
// a token without '=' continues the previous value: "edit Read name=Read books".
func parseEdit(raw string, args []string) (Command, error) {
	split := len(args)
	for i, tok := range args {
		if key, _, ok := strings.Cut(tok, "="); ok && isEditKey(key) {
			split = i
			break
		}
	}
	if split == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires an identifier before its fields"}
	}
	if split == len(args) {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires an identifier and at least one field"}
	}
	out := EditArgs{Identifier: strings.Join(args[:split], " ")}
	values := make(map[string]string)
	order := make([]string, 0, 4)
	current := ""
	for _, tok := range args[split:] {
		key, value, ok := strings.Cut(tok, "=")
		if ok && isEditKey(key) {
			current = strings.ToLower(key)
			if _, seen := values[current]; !seen {
				order = append(order, current)
			}
			values[current] = value
			continue
		}
		values[current] += " " + tok
	}

	for _, key := range order {
		v := values[key]
		switch key {
		case "name":
			out.Name = &v
		case "desc", "description":
			out.Description = &v
		case "freq", "frequency":
			out.Frequency = &v
		case "active":
			b, err := strconv.ParseBool(v)
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("active must be true or false, got %q", v)}
			}
			out.Active = &b
		}
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: &out}, nil
}

func isEditKey(key string) bool {
	switch strings.ToLower(key) {
	case "name", "desc", "description", "freq", "frequency", "active":
		return true
	default:
		return false
	}
}
