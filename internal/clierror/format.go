package clierror

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	messageFmt = color.New(color.FgRed).SprintFunc()
	subjectFmt = color.New(color.FgRed, color.Bold).SprintFunc()
	pathFmt    = color.New(color.FgGreen).SprintFunc()
	detailFmt  = color.New(color.FgRed).SprintFunc()
	commandFmt = color.New(color.FgCyan).SprintFunc()
)

// Format renders err for the terminal. Colors follow fatih/color's
// auto-detection, so output to a pipe or with NO_COLOR set is plain.
func Format(err error) string {
	return render(err, !color.NoColor)
}

func render(err error, useColors bool) string {
	if err == nil {
		return ""
	}
	e := As(err)
	if e == nil {
		if useColors {
			return messageFmt(err.Error()) + "\n"
		}
		return err.Error() + "\n"
	}
	return format(e, useColors)
}

// Fprint writes the formatted error to w.
func Fprint(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprint(w, Format(err))
}

func format(e *Error, useColors bool) string {
	paint := func(f func(a ...interface{}) string, s string) string {
		if useColors {
			return f(s)
		}
		return s
	}

	var sb strings.Builder

	switch e.Kind {
	case InvalidName:
		quoted := fmt.Sprintf("%q", e.Subject)
		sb.WriteString(strings.Replace(e.Message, quoted, paint(subjectFmt, quoted), 1))
		sb.WriteString("\n")
		for _, d := range e.Details {
			sb.WriteString(paint(detailFmt, "  *  "+d))
			sb.WriteString("\n")
		}
	case DirectoryExists:
		sb.WriteString(strings.Replace(e.Message, e.Subject, paint(pathFmt, e.Subject), 1))
		sb.WriteString("\n")
	case SubprocessFailure:
		sb.WriteString(paint(messageFmt, e.Error()))
		sb.WriteString("\n")
		if e.Command != "" {
			sb.WriteString("  ")
			sb.WriteString(paint(commandFmt, e.Command))
			sb.WriteString("\n")
		}
	default:
		sb.WriteString(paint(messageFmt, e.Error()))
		sb.WriteString("\n")
		for _, d := range e.Details {
			sb.WriteString("  ")
			sb.WriteString(d)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
