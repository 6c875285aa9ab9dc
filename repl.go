package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/loomlang/loom/audio"
	"github.com/loomlang/loom/pattern"
	"github.com/loomlang/loom/script"
)

type env struct {
	player  *audio.Player
	library *audio.Library
	out     io.Writer
}

// eval runs one REPL line: builtin commands are checked first, anything
// else is evaluated as a pattern expression. An expression that yields a
// pattern becomes the live pattern.
func (e *env) eval(input string) error {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil
	}
	for _, cmd := range commands {
		if fields[0] != cmd.name {
			continue
		}
		args := fields[1:]
		if len(args) != cmd.arity {
			return fmt.Errorf("%s: wrong number of arguments: want %v, got %v",
				cmd.name, cmd.arity, len(args))
		}
		if err := cmd.run(e, args); err != nil {
			return fmt.Errorf("%s error: %w", cmd.name, err)
		}
		return nil
	}

	result, err := script.Eval(input)
	if err != nil {
		return err
	}
	switch v := result.(type) {
	case pattern.Pattern:
		if err := e.player.SetPattern(v); err != nil {
			return err
		}
		renderPattern(e.out, v)
	case nil:
	default:
		fmt.Fprintln(e.out, v)
	}
	return nil
}

func repl(env *env) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			fmt.Println(err)
			continue
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		if err := env.eval(line); err != nil {
			fmt.Println(err)
		}
	}
}

type command struct {
	name  string
	run   func(*env, []string) error
	arity int
}

var commands = []command{
	{"hush", hushCommand, 0},
	{"cps", cpsCommand, 1},
	{"sounds", soundsCommand, 0},
	{"show", showCommand, 0},
}

func hushCommand(env *env, args []string) error {
	return env.player.Hush()
}

func cpsCommand(env *env, args []string) error {
	cps, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return err
	}
	return env.player.Set(audio.PropCPS, cps)
}

func soundsCommand(env *env, args []string) error {
	for _, name := range env.library.Names() {
		fmt.Fprintln(env.out, name)
	}
	return nil
}

func showCommand(env *env, args []string) error {
	renderPattern(env.out, env.player.Pattern())
	return nil
}
