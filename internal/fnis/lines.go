// Package fnis generates the text lines consumed by the external
// animation-installation tool.
package fnis

import (
	"fmt"
	"strings"
)

// Animation type codes in the generated list format.
const (
	typeBasic    = "b" // single self-contained animation
	typeStart    = "s" // first event of a chained animation
	typeContinue = "+" // follow-up event of a chained animation
)

// Lines generates the list lines for one animation event chain.
//
// A single event yields exactly one basic line. A chain yields one line per
// event: the first is the start line and carries the "a" option, the rest
// continue the chain, and the last additionally suppresses the blend-out
// transition ("a,Tn") when the stage has a fixed length. The namespace
// token prefixes both the animation handle and the file name stem.
func Lines(events []string, namespace string, fixedLen bool, objects []string) []string {
	if len(events) == 1 {
		options := ""
		if fixedLen {
			options = "a"
		}
		return []string{line(typeBasic, events[0], namespace, options, objects)}
	}

	lines := make([]string, 0, len(events))
	for i, event := range events {
		options := ""
		switch {
		case i == 0:
			options = "a"
		case fixedLen && i == len(events)-1:
			options = "a,Tn"
		}
		code := typeContinue
		if i == 0 {
			code = typeStart
		}
		lines = append(lines, line(code, event, namespace, options, objects))
	}
	return lines
}

// SplitObjects splits a comma-separated companion object list, dropping
// empty segments.
func SplitObjects(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	objects := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			objects = append(objects, p)
		}
	}
	if len(objects) == 0 {
		return nil
	}
	return objects
}

// line renders one list line:
//
//	<type>[ -[o,]<options>] <ns><event> <ns><event>.hkx[ <objects>...]
//
// The flags segment appears only when there are options or companion
// objects; the "o," marker is present only when objects follow.
func line(animType, event, namespace, options string, objects []string) string {
	flags := ""
	if options != "" || len(objects) > 0 {
		marker := ""
		if len(objects) > 0 {
			marker = "o,"
		}
		flags = fmt.Sprintf(" -%s%s", marker, options)
	}

	trailer := ""
	if len(objects) > 0 {
		trailer = " " + strings.Join(objects, " ")
	}

	return fmt.Sprintf("%s%s %s%s %s%s.hkx%s",
		animType, flags, namespace, event, namespace, event, trailer)
}
