// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

package log

import "sync"

// Ctx is a shorthand for a key/value context passed to a logging call as a
// single value instead of an alternating varargs list.
type Ctx map[string]interface{}

// toArray flattens Ctx into the alternating key, value, key, value list the
// rest of this package works with.
func (c Ctx) toArray() []interface{} {
	arr := make([]interface{}, 0, len(c)*2)
	for k, v := range c {
		arr = append(arr, k, v)
	}
	return arr
}

// normalize pads an odd-length context slice with a trailing nil value, so
// every call site can assume key/value pairs line up regardless of caller
// mistakes.
func normalize(ctx []interface{}) []interface{} {
	if len(ctx)%2 != 0 {
		ctx = append(ctx, nil)
	}
	return ctx
}

// logger is the concrete Logger: an immutable context prefix plus a shared
// logrus backend (terminal) that Init reconfigures in place.
type logger struct {
	ctx     []interface{}
	mapPool sync.Pool
}

// New returns a logger whose context is this logger's context extended by
// ctx; the receiver itself is left unchanged.
func (l *logger) New(ctx ...interface{}) Logger {
	child := &logger{mapPool: l.mapPool}
	child.ctx = make([]interface{}, 0, len(l.ctx)+len(ctx))
	child.ctx = append(child.ctx, l.ctx...)
	child.ctx = append(child.ctx, normalize(ctx)...)
	return child
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(msg, LvlTrace, ctx, skipLevel) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(msg, LvlDebug, ctx, skipLevel) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(msg, LvlInfo, ctx, skipLevel) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(msg, LvlWarn, ctx, skipLevel) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(msg, LvlError, ctx, skipLevel) }
func (l *logger) Crit(msg string, ctx ...interface{}) {
	l.write(msg, LvlCrit, ctx, skipLevel)
}

// write merges l's own context with the call's context into a logrus.Fields
// map (borrowed from mapPool) and emits one entry at the given level.
// skip is unused by the logrus backend; it is kept so call sites that pass
// it (mirroring callers that need a real caller-skip count for a different
// backend) do not need to change.
func (l *logger) write(msg string, lvl Lvl, ctx []interface{}, skip int) {
	fields, _ := l.mapPool.Get().(map[string]interface{})
	if fields == nil {
		fields = make(map[string]interface{})
	}
	defer func() {
		for k := range fields {
			delete(fields, k)
		}
		l.mapPool.Put(fields)
	}()

	full := normalize(append(append([]interface{}{}, l.ctx...), ctx...))
	for i := 0; i+1 < len(full); i += 2 {
		key, ok := full[i].(string)
		if !ok {
			key = "!BADKEY"
		}
		fields[key] = full[i+1]
	}

	entry := terminal.WithFields(fields)
	switch lvl {
	case LvlTrace:
		entry.Trace(msg)
	case LvlDebug:
		entry.Debug(msg)
	case LvlInfo:
		entry.Info(msg)
	case LvlWarn:
		entry.Warn(msg)
	case LvlError:
		entry.Error(msg)
	case LvlCrit, LvlFatal:
		entry.Error(msg)
	}
}
