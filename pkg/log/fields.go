package log

import "time"

// Field is a single key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// Str builds a string field.
func Str(key, value string) Field { return Field{Key: key, Value: value} }

// Int builds an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 builds an int64 field.
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Dur builds a duration field.
func Dur(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Err builds the conventional "error" field.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Component tags entries with the component that produced them.
func Component(name string) Field { return Field{Key: "component", Value: name} }
