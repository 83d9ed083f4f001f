package commands

import (
	"context"
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add Meditate", TypeAdd},
		{"list", TypeList},
		{"list all", TypeList},
		{"complete Meditate", TypeComplete},
		{"remove Read", TypeRemove},
		{"edit Read active=false", TypeEdit},
		{"show Read", TypeShow},
		{"export habits.db", TypeExport},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseKeepsMultiWordNames(t *testing.T) {
	cmd, err := Parse("/add  Read 20 pages")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Name != "Read 20 pages" {
		t.Fatalf("unexpected name: %q", cmd.Add.Name)
	}

	cmd, err = Parse("complete Walk the dog")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Complete.Identifier != "Walk the dog" {
		t.Fatalf("unexpected identifier: %q", cmd.Complete.Identifier)
	}
}

func TestParseList(t *testing.T) {
	cmd, err := Parse("list")
	if err != nil || !cmd.List.ActiveOnly {
		t.Fatalf("expected active-only list, got %+v err=%v", cmd.List, err)
	}
	cmd, err = Parse("list ALL")
	if err != nil || cmd.List.ActiveOnly {
		t.Fatalf("expected full list, got %+v err=%v", cmd.List, err)
	}
	_, err = Parse("list everything")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestParseEdit(t *testing.T) {
	cmd, err := Parse("edit Read name=Read books desc=null freq=5 active=false")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	e := cmd.Edit
	if e.Identifier != "Read" {
		t.Fatalf("unexpected identifier: %q", e.Identifier)
	}
	if e.Name == nil || *e.Name != "Read books" {
		t.Fatalf("unexpected name: %v", e.Name)
	}
	if e.Description == nil || *e.Description != "null" {
		t.Fatalf("unexpected description: %v", e.Description)
	}
	if e.Frequency == nil || *e.Frequency != "5" {
		t.Fatalf("unexpected frequency: %v", e.Frequency)
	}
	if e.Active == nil || *e.Active {
		t.Fatalf("unexpected active: %v", e.Active)
	}
}

func TestParseEditMultiWordIdentifier(t *testing.T) {
	cmd, err := Parse("edit Read books name=Reading desc=twenty pages")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	e := cmd.Edit
	if e.Identifier != "Read books" {
		t.Fatalf("unexpected identifier: %q", e.Identifier)
	}
	if e.Name == nil || *e.Name != "Reading" {
		t.Fatalf("unexpected name: %v", e.Name)
	}
	if e.Description == nil || *e.Description != "twenty pages" {
		t.Fatalf("unexpected description: %v", e.Description)
	}
}

func TestParseEditErrors(t *testing.T) {
	for _, in := range []string{"edit Read", "edit Read stray", "edit Read active=maybe", "edit name=Read"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "/"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input, got %v", in, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(context.Background(), cmd, Handlers{
		Add: func(_ context.Context, a AddArgs) (Result, error) {
			called = true
			if a.Name != "write docs" {
				t.Fatalf("unexpected name: %q", a.Name)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("show Read")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(context.Background(), cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
