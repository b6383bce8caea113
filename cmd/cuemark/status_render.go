package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusOK statusKind = iota
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func renderCheckLine(name string, kind statusKind, message string, colorize bool) string {
	icon := "?"
	color := ""
	switch kind {
	case statusOK:
		icon, color = "✔", ansiGreen
	case statusWarn:
		icon, color = "⚠", ansiYellow
	case statusError:
		icon, color = "✘", ansiRed
	}
	line := fmt.Sprintf("%s %s: %s", icon, name, message)
	if colorize && color != "" {
		return color + line + ansiReset
	}
	return line
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
