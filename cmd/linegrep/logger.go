package main

import (
	"fmt"
	"io"
	"strings"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

func (l level) String() string {
	switch l {
	case levelDebug:
		return "debug"
	case levelInfo:
		return "info"
	case levelWarn:
		return "warn"
	default:
		return "error"
	}
}

// logger writes "[component] [LEVEL] message" lines to w.
type logger struct {
	w   io.Writer
	min level
}

func newLogger(w io.Writer, debug bool) *logger {
	min := levelWarn
	if debug {
		min = levelDebug
	}
	return &logger{w: w, min: min}
}

func (l *logger) log(component string, lv level, format string, args ...any) {
	if lv < l.min {
		return
	}
	fmt.Fprintf(l.w, "[%s] [%s] %s\n", component, strings.ToUpper(lv.String()), fmt.Sprintf(format, args...))
}

func (l *logger) Debugf(component, format string, args ...any) {
	l.log(component, levelDebug, format, args...)
}

func (l *logger) Infof(component, format string, args ...any) {
	l.log(component, levelInfo, format, args...)
}

func (l *logger) Warnf(component, format string, args ...any) {
	l.log(component, levelWarn, format, args...)
}

func (l *logger) Errorf(component, format string, args ...any) {
	l.log(component, levelError, format, args...)
}
