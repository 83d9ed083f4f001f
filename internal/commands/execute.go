package commands

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/habitd/internal/model"
)

// Result is what a handler reports back. Habits is set by list, Habit by
// commands that act on a single record.
type Result struct {
	Message string
	Habit   *model.Habit
	Habits  []model.Habit
}

type Handlers struct {
	Add      func(context.Context, AddArgs) (Result, error)
	List     func(context.Context, ListArgs) (Result, error)
	Complete func(context.Context, CompleteArgs) (Result, error)
	Remove   func(context.Context, RemoveArgs) (Result, error)
	Edit     func(context.Context, EditArgs) (Result, error)
	Show     func(context.Context, ShowArgs) (Result, error)
	Export   func(context.Context, ExportArgs) (Result, error)
}

func Execute(ctx context.Context, cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Add(ctx, *cmd.Add)
	case TypeList:
		if handlers.List == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.List(ctx, *cmd.List)
	case TypeComplete:
		if handlers.Complete == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Complete(ctx, *cmd.Complete)
	case TypeRemove:
		if handlers.Remove == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Remove(ctx, *cmd.Remove)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Edit(ctx, *cmd.Edit)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Show(ctx, *cmd.Show)
	case TypeExport:
		if handlers.Export == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Export(ctx, *cmd.Export)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missingHandler(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
